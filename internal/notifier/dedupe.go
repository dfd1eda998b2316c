package notifier

import (
	"sync"

	"trendwatch/internal/model"
)

// Deduper tracks the last alerted signal per symbol so an unchanged
// crossover evaluated on consecutive ticks alerts exactly once.
type Deduper struct {
	mu   sync.Mutex
	last map[string]model.Signal
}

// NewDeduper creates an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{last: make(map[string]model.Signal)}
}

// ShouldAlert reports whether sig is new for symbol and records it.
// NONE never alerts and clears the remembered signal, so a later
// reappearance of the same signal alerts again.
func (d *Deduper) ShouldAlert(symbol string, sig model.Signal) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sig == model.SignalNone || sig == "" {
		d.last[symbol] = model.SignalNone
		return false
	}
	if d.last[symbol] == sig {
		return false
	}
	d.last[symbol] = sig
	return true
}
