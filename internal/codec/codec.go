// Package codec implements reversible delta compression for price series.
// Consecutive prices differ little relative to their absolute value, so the
// series is stored as one base price plus small differences.
package codec

import (
	"fmt"

	"trendwatch/internal/model"
)

// Encode compresses prices into a base value plus consecutive deltas.
// Never fails: an empty input yields Count 0 with no deltas, a single
// element yields just the base.
func Encode(prices []float64) model.CompressedSeries {
	c := model.CompressedSeries{Count: len(prices)}
	if len(prices) == 0 {
		return c
	}
	c.BasePrice = prices[0]
	if len(prices) == 1 {
		return c
	}
	c.Deltas = make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		c.Deltas[i-1] = prices[i] - prices[i-1]
	}
	return c
}

// Decode reconstructs the original prices by a running prefix sum from the
// base. A count that does not match the delta slice is ErrInvalidInput.
func Decode(c model.CompressedSeries) ([]float64, error) {
	if c.Count < 0 {
		return nil, fmt.Errorf("codec: negative count %d: %w", c.Count, model.ErrInvalidInput)
	}
	if c.Count == 0 {
		if len(c.Deltas) != 0 {
			return nil, fmt.Errorf("codec: empty series carries %d deltas: %w", len(c.Deltas), model.ErrInvalidInput)
		}
		return []float64{}, nil
	}
	if len(c.Deltas) != c.Count-1 {
		return nil, fmt.Errorf("codec: count %d does not match %d deltas: %w", c.Count, len(c.Deltas), model.ErrInvalidInput)
	}
	prices := make([]float64, c.Count)
	prices[0] = c.BasePrice
	for i, d := range c.Deltas {
		prices[i+1] = prices[i] + d
	}
	return prices, nil
}

// Ratio reports original values per stored value. 0 for an empty series.
func Ratio(c model.CompressedSeries) float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.Count) / float64(1+len(c.Deltas))
}
