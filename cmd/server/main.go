package main

import (
	"context"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"biotech_monitor/internal/app/di"
	"biotech_monitor/internal/app/router"
	markethandler "biotech_monitor/internal/feature/marketdata/transport/handler"
	marketusecase "biotech_monitor/internal/feature/marketdata/usecase"
	watchadapters "biotech_monitor/internal/feature/watchlist/adapters"
	watchhandler "biotech_monitor/internal/feature/watchlist/transport/handler"
	watchusecase "biotech_monitor/internal/feature/watchlist/usecase"
	infradb "biotech_monitor/internal/platform/db"
	infraredis "biotech_monitor/internal/platform/redis"
	"biotech_monitor/internal/shared/progress"
)

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 外部データソース
	reference := di.NewReferenceProvider()
	quote := di.NewQuoteProvider()
	sentiment := di.NewSentimentAnalyzer(ctx)

	// Repository
	tickerRepo := watchadapters.NewTickerRepository(db)
	snapshotStore := di.NewSnapshotStore(rdb)

	// Usecase
	tracker := progress.NewTracker()
	tickerUC := watchusecase.NewTickerUsecase(tickerRepo, reference, reference)
	collectUC := marketusecase.NewCollectUsecase(reference, quote, sentiment, snapshotStore, tickerRepo, tracker)
	snapshotUC := marketusecase.NewSnapshotUsecase(snapshotStore, tracker)

	// Handler
	tickerH := watchhandler.NewTickerHandler(tickerUC)
	marketH := markethandler.NewMarketDataHandler(collectUC, snapshotUC)

	// ルータ生成
	r := router.NewRouter(tickerH, marketH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
