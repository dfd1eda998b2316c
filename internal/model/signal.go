package model

import "time"

// Signal classifies a point of the crossover series.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalNone Signal = "NONE"
)

// SignalEvent is the classification of one aligned point of the two
// moving-average series. A non-NONE signal exists only where the sign of
// (short - long) changed against the previous aligned point.
type SignalEvent struct {
	Time    time.Time
	Signal  Signal
	ShortMA float64
	LongMA  float64
}
