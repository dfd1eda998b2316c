// Package strategy classifies moving-average crossovers. It is a pure
// function of the two input series: no state survives between calls, so
// independent evaluations may run concurrently.
package strategy

import (
	"fmt"

	"trendwatch/internal/calculator"
	"trendwatch/internal/model"
)

// Classify compares the (short - long) difference of two consecutive
// aligned points. A signal requires an actual sign change: an equal pair
// alone never signals, which keeps a flat short==long stretch silent.
func Classify(prevDiff, currDiff float64) model.Signal {
	switch {
	case prevDiff <= 0 && currDiff > 0:
		return model.SignalBuy
	case prevDiff >= 0 && currDiff < 0:
		return model.SignalSell
	default:
		return model.SignalNone
	}
}

// Crossovers evaluates every timestamp where both moving-average series have
// the current and previous entry. The first aligned point is always NONE.
// Both inputs must be time-ascending, as produced by calculator.MovingAverage.
func Crossovers(short, long []model.MAPoint) []model.SignalEvent {
	var events []model.SignalEvent
	var prevDiff float64
	i, j := 0, 0
	for i < len(short) && j < len(long) {
		s, l := short[i], long[j]
		if s.Time.Before(l.Time) {
			i++
			continue
		}
		if l.Time.Before(s.Time) {
			j++
			continue
		}
		diff := s.Value - l.Value
		sig := model.SignalNone
		if len(events) > 0 {
			sig = Classify(prevDiff, diff)
		}
		events = append(events, model.SignalEvent{
			Time:    s.Time,
			Signal:  sig,
			ShortMA: s.Value,
			LongMA:  l.Value,
		})
		prevDiff = diff
		i++
		j++
	}
	return events
}

// Snapshot carries the latest indicator values for alert formatting.
type Snapshot struct {
	Price   float64
	ShortMA float64
	LongMA  float64
}

// Evaluate classifies only the most recent point of the series, the
// operation the monitor runs once per tick on freshly fetched data.
func Evaluate(series *model.PriceSeries, shortWindow, longWindow int) (model.Signal, *Snapshot, error) {
	if shortWindow >= longWindow {
		return model.SignalNone, nil, fmt.Errorf("strategy: short window %d must be below long window %d: %w",
			shortWindow, longWindow, model.ErrInvalidConfig)
	}
	shortMA, err := calculator.MovingAverage(series, shortWindow)
	if err != nil {
		return model.SignalNone, nil, err
	}
	longMA, err := calculator.MovingAverage(series, longWindow)
	if err != nil {
		return model.SignalNone, nil, err
	}
	events := Crossovers(shortMA, longMA)
	if len(events) == 0 {
		return model.SignalNone, nil, fmt.Errorf("strategy: no aligned points for windows %d/%d: %w",
			shortWindow, longWindow, model.ErrInsufficientData)
	}
	last := events[len(events)-1]
	snap := &Snapshot{
		Price:   series.Points[series.Len()-1].Price,
		ShortMA: last.ShortMA,
		LongMA:  last.LongMA,
	}
	return last.Signal, snap, nil
}
