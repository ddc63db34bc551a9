// Package polygon provides a client for the Polygon.io market data API.
package polygon

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration for the Polygon API client.
type Config struct {
	APIKey            string        // API key for authentication
	BaseURL           string        // Base URL for the API (e.g., "https://api.polygon.io")
	Timeout           time.Duration // HTTP request timeout
	RequestsPerMinute int           // Free tier allows 5 requests per minute
}

// LoadConfig loads Polygon configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:            os.Getenv("POLYGON_API_KEY"),
		BaseURL:           os.Getenv("POLYGON_BASE_URL"),
		Timeout:           15 * time.Second,
		RequestsPerMinute: 5,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.polygon.io"
	}
	if v := os.Getenv("POLYGON_REQUESTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestsPerMinute = n
		}
	}
	return cfg
}
