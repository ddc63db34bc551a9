package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"biotech_monitor/internal/app/di"
	"biotech_monitor/internal/feature/marketdata/usecase"
	watchadapters "biotech_monitor/internal/feature/watchlist/adapters"
	infradb "biotech_monitor/internal/platform/db"
	"biotech_monitor/internal/shared/progress"
)

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols to collect (default: all active watchlist tickers)")
	flag.Parse()

	db := infradb.OpenDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	reference := di.NewReferenceProvider()
	quote := di.NewQuoteProvider()
	sentiment := di.NewSentimentAnalyzer(ctx)
	store := di.NewSnapshotStore(nil)
	tickerRepo := watchadapters.NewTickerRepository(db)

	uc := usecase.NewCollectUsecase(reference, quote, sentiment, store, tickerRepo, progress.NewTracker())

	var symbols []string
	if *symbolsFlag != "" {
		for _, s := range strings.Split(*symbolsFlag, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, strings.ToUpper(s))
			}
		}
	}

	if err := uc.RunSync(ctx, symbols); err != nil {
		log.Fatal(err)
	}
	log.Println("collect ok")
}
