// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"os"

	"biotech_monitor/internal/feature/marketdata/adapters/gemini"
	"biotech_monitor/internal/feature/marketdata/usecase"
	"biotech_monitor/internal/platform/externalapi/polygon"
	"biotech_monitor/internal/platform/externalapi/yahoo"
	infrahttp "biotech_monitor/internal/platform/http"
)

// NewReferenceProvider creates a fully configured Polygon client with HTTP client.
func NewReferenceProvider() *polygon.Client {
	cfg := polygon.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return polygon.NewClient(cfg, httpClient)
}

// NewQuoteProvider creates a fully configured Yahoo Finance client with HTTP client.
func NewQuoteProvider() *yahoo.Client {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewClient(cfg, httpClient)
}

// NewSentimentAnalyzer creates a Gemini-backed sentiment analyzer.
// GEMINI_SENTIMENT が有効でない環境や認証情報がない環境では nil を返し、
// センチメント補完はスキップされます。
func NewSentimentAnalyzer(ctx context.Context) usecase.SentimentAnalyzer {
	if os.Getenv("GEMINI_SENTIMENT") != "true" {
		return nil
	}
	analyzer, err := gemini.NewGeminiAnalyzer(ctx)
	if err != nil {
		slog.Warn("Gemini unavailable, news sentiment will not be backfilled", "error", err)
		return nil
	}
	return analyzer
}
