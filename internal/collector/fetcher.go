package collector

import "trendwatch/internal/model"

// Fetcher defines the interface for fetching closing prices.
type Fetcher interface {
	// FetchIntraday returns 5-minute closing prices over the lookback window.
	FetchIntraday(symbol string, lookbackDays int) ([]model.PricePoint, error)
	// FetchDaily returns daily closing prices over the lookback window.
	FetchDaily(symbol string, lookbackDays int) ([]model.PricePoint, error)
	Name() string
}
