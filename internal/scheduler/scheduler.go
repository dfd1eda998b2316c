package scheduler

import (
	"context"
	"fmt"
	"log"

	"trendwatch/internal/codec"
	"trendwatch/internal/collector"
	"trendwatch/internal/metrics"
	"trendwatch/internal/notifier"
	"trendwatch/internal/recorder"
	"trendwatch/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the monitor tick on a cron cadence. Each tick fetches
// intraday prices, evaluates the crossover, and alerts on new signals.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Notifier    *notifier.DiscordNotifier
	Recorder    recorder.Recorder
	Dedupe      *notifier.Deduper
	Ctx         context.Context
	ShortWindow int
	LongWindow  int
	Lookback    int
}

// NewScheduler creates a Scheduler wired to its collaborators.
func NewScheduler(ctx context.Context, col *collector.Collector, dn *notifier.DiscordNotifier, rec recorder.Recorder, shortWindow, longWindow, lookbackDays int) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Notifier:    dn,
		Recorder:    rec,
		Dedupe:      notifier.NewDeduper(),
		Ctx:         ctx,
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
		Lookback:    lookbackDays,
	}
}

// Register registers the tick task on the given cron spec.
func (s *Scheduler) Register(tickCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tick); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the tick immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.tick()
}

func (s *Scheduler) tick() {
	symbol := s.Collector.Symbol
	log.Printf("[INFO] running monitor tick for %s", symbol)

	series, err := s.Collector.CollectIntraday(s.Lookback)
	if err != nil {
		log.Printf("[ERROR] tick collect: %v", err)
		metrics.FetchErrors.WithLabelValues(symbol).Inc()
		return
	}
	metrics.Ticks.WithLabelValues(symbol).Inc()

	compressed := codec.Encode(series.Prices())

	sig, snap, err := strategy.Evaluate(series, s.ShortWindow, s.LongWindow)
	if err != nil {
		log.Printf("[WARN] tick evaluate: %v", err)
		return
	}
	metrics.Signals.WithLabelValues(symbol, string(sig)).Inc()
	log.Printf("[INFO] %s: %d points (ratio %.2f), signal %s, price %.2f, MA %.2f/%.2f",
		symbol, series.Len(), codec.Ratio(compressed), sig, snap.Price, snap.ShortMA, snap.LongMA)

	if err := s.Recorder.RecordTick(&recorder.TickSnapshot{
		Symbol:     symbol,
		Points:     series.Len(),
		LastPrice:  snap.Price,
		ShortMA:    snap.ShortMA,
		LongMA:     snap.LongMA,
		Signal:     sig,
		Compressed: compressed,
	}); err != nil {
		log.Printf("[ERROR] record tick: %v", err)
	}

	if !s.Dedupe.ShouldAlert(symbol, sig) {
		return
	}
	log.Printf("[INFO] new %s signal for %s, alerting", sig, symbol)

	if s.Notifier.Configured() {
		err := s.Notifier.SendWithRetry(s.Ctx, 3, func() error {
			return s.Notifier.SendSignal(symbol, sig, snap)
		})
		if err != nil {
			log.Printf("[ERROR] send alert: %v", err)
		} else {
			metrics.Alerts.WithLabelValues(symbol, string(sig)).Inc()
		}
	} else {
		log.Println("[WARN] discord webhook not configured, alert skipped")
	}

	if err := s.Recorder.RecordSignal(&recorder.SignalEventRecord{
		Symbol:  symbol,
		Signal:  sig,
		Price:   snap.Price,
		ShortMA: snap.ShortMA,
		LongMA:  snap.LongMA,
	}); err != nil {
		log.Printf("[ERROR] record signal: %v", err)
	}
}
