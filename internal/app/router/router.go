package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	markethandler "biotech_monitor/internal/feature/marketdata/transport/handler"
	watchhandler "biotech_monitor/internal/feature/watchlist/transport/handler"
	"biotech_monitor/internal/platform/http/handler"
)

func NewRouter(tickers *watchhandler.TickerHandler, market *markethandler.MarketDataHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのダッシュボードから叩くためCORSを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	{
		// 監視銘柄の管理
		api.GET("/tickers", tickers.List)
		api.POST("/tickers", tickers.Add)
		api.DELETE("/tickers/:symbol", tickers.Remove)
		api.GET("/search", tickers.Search)

		// 収集済み市場データの参照と収集ランの制御
		api.GET("/market-data", market.Get)
		api.GET("/market-data/:symbol", market.GetBySymbol)
		api.POST("/market-data/refresh", market.Refresh)
		api.GET("/market-data/refresh/status", market.Status)
	}

	return r
}
