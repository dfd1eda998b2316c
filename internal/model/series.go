package model

import (
	"fmt"
	"math"
	"time"
)

// PricePoint is a single observation in a price time series.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// PriceSeries holds ordered closing prices for a single symbol.
// Immutable once produced by the collector.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Prices returns the price values in chronological order.
func (s *PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Validate checks that timestamps are strictly increasing and prices are
// positive finite numbers.
func (s *PriceSeries) Validate() error {
	for i, p := range s.Points {
		if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return fmt.Errorf("point %d: price %v is not positive finite: %w", i, p.Price, ErrInvalidInput)
		}
		if i > 0 && !s.Points[i-1].Time.Before(p.Time) {
			return fmt.Errorf("point %d: timestamp %s not after %s: %w",
				i, p.Time.Format(time.RFC3339), s.Points[i-1].Time.Format(time.RFC3339), ErrInvalidInput)
		}
	}
	return nil
}

// MAPoint is one entry of a moving-average series. Indices of the source
// series earlier than the first full window have no MAPoint at all.
type MAPoint struct {
	Time  time.Time
	Value float64
}
