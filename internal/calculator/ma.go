package calculator

import (
	"fmt"

	"trendwatch/internal/model"
)

// SMA computes the simple moving average of the trailing period prices.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("sma: period %d must be positive: %w", period, model.ErrInvalidConfig)
	}
	if len(prices) < period {
		return 0, fmt.Errorf("sma: need %d points, have %d: %w", period, len(prices), model.ErrInsufficientData)
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// MovingAverage computes the rolling simple moving average over the series.
// The result is aligned to the source: the first entry sits at index
// window-1 of the series, earlier indices have no entry at all.
// A window outside [1, len(series)] is ErrInvalidConfig.
func MovingAverage(series *model.PriceSeries, window int) ([]model.MAPoint, error) {
	n := series.Len()
	if window <= 0 || window > n {
		return nil, fmt.Errorf("moving average: window %d out of range for %d points: %w",
			window, n, model.ErrInvalidConfig)
	}
	prices := series.Prices()
	out := make([]model.MAPoint, 0, n-window+1)
	for i := window; i <= n; i++ {
		avg, err := SMA(prices[:i], window)
		if err != nil {
			return nil, err
		}
		out = append(out, model.MAPoint{Time: series.Points[i-1].Time, Value: avg})
	}
	return out, nil
}
