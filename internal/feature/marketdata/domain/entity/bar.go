// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// PriceBar represents one trading day of OHLCV data for a symbol.
// Bars are immutable once fetched for a given collection run.
type PriceBar struct {
	Date   time.Time // Trading day (provider timestamps are truncated to the day)
	Open   float64   // Opening price
	High   float64   // Highest price during the day
	Low    float64   // Lowest price during the day
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// Closes extracts the close-price series from a slice of bars.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume series from a slice of bars.
func Volumes(bars []PriceBar) []int64 {
	out := make([]int64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}
