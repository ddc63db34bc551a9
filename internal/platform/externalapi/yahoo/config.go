// Package yahoo provides a client for the Yahoo Finance quoteSummary API.
// It is the secondary data source, used to fill fields the primary
// provider does not report.
package yahoo

import (
	"os"
	"time"
)

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("YAHOO_BASE_URL"),
		Timeout: 10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com"
	}
	return cfg
}
