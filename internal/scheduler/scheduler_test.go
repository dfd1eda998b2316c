package scheduler

import (
	"context"
	"testing"
	"time"

	"trendwatch/internal/collector"
	"trendwatch/internal/model"
	"trendwatch/internal/notifier"
	"trendwatch/internal/recorder"
)

type captureRecorder struct {
	ticks   []*recorder.TickSnapshot
	signals []*recorder.SignalEventRecord
}

func (c *captureRecorder) RecordTick(s *recorder.TickSnapshot) error {
	c.ticks = append(c.ticks, s)
	return nil
}

func (c *captureRecorder) RecordSignal(e *recorder.SignalEventRecord) error {
	c.signals = append(c.signals, e)
	return nil
}

func (c *captureRecorder) RecordBacktest(_ *recorder.BacktestRun) error { return nil }
func (c *captureRecorder) Close() error                                 { return nil }

func mockPoints(prices ...float64) []model.PricePoint {
	base := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	out := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = model.PricePoint{Time: base.Add(time.Duration(i) * 5 * time.Minute), Price: p}
	}
	return out
}

func newTestScheduler(fetcher collector.Fetcher, rec recorder.Recorder) *Scheduler {
	col := collector.NewCollector(fetcher, "TEST")
	dn := notifier.NewDiscordNotifier("", "")
	return NewScheduler(context.Background(), col, dn, rec, 1, 2, 5)
}

func TestTick_RecordsSnapshotAndSignal(t *testing.T) {
	// The last aligned pair crosses upward, so the tick evaluates to BUY.
	fetcher := &collector.MockFetcher{Points: mockPoints(100, 110, 100, 90, 100)}
	rec := &captureRecorder{}
	s := newTestScheduler(fetcher, rec)

	s.RunNow()

	if len(rec.ticks) != 1 {
		t.Fatalf("expected 1 tick record, got %d", len(rec.ticks))
	}
	tick := rec.ticks[0]
	if tick.Symbol != "TEST" || tick.Points != 5 {
		t.Errorf("unexpected tick snapshot: %+v", tick)
	}
	if tick.Signal != model.SignalBuy {
		t.Errorf("expected BUY snapshot signal, got %s", tick.Signal)
	}
	if tick.Compressed.Count != 5 || tick.Compressed.BasePrice != 100 {
		t.Errorf("compressed series not captured: %+v", tick.Compressed)
	}

	if len(rec.signals) != 1 {
		t.Fatalf("expected 1 signal record, got %d", len(rec.signals))
	}
	if rec.signals[0].Signal != model.SignalBuy {
		t.Errorf("expected BUY signal record, got %s", rec.signals[0].Signal)
	}
}

func TestTick_DedupesRepeatedSignal(t *testing.T) {
	fetcher := &collector.MockFetcher{Points: mockPoints(100, 110, 100, 90, 100)}
	rec := &captureRecorder{}
	s := newTestScheduler(fetcher, rec)

	s.RunNow()
	s.RunNow()

	if len(rec.ticks) != 2 {
		t.Fatalf("expected 2 tick records, got %d", len(rec.ticks))
	}
	if len(rec.signals) != 1 {
		t.Errorf("repeated BUY should alert once, got %d signal records", len(rec.signals))
	}
}

func TestTick_FetchFailureRecordsNothing(t *testing.T) {
	fetcher := &collector.MockFetcher{Err: context.DeadlineExceeded}
	rec := &captureRecorder{}
	s := newTestScheduler(fetcher, rec)

	s.RunNow()

	if len(rec.ticks) != 0 || len(rec.signals) != 0 {
		t.Errorf("fetch failure should record nothing: %d ticks, %d signals",
			len(rec.ticks), len(rec.signals))
	}
}

func TestRegister_BadCronSpec(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{}, &captureRecorder{})
	if err := s.Register("not a cron spec"); err == nil {
		t.Error("expected error for malformed cron spec")
	}
}
