package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"trendwatch/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordTick(t *testing.T) {
	r := openTestRecorder(t)
	err := r.RecordTick(&TickSnapshot{
		Symbol:    "AAPL",
		Points:    5,
		LastPrice: 150.25,
		ShortMA:   150.1,
		LongMA:    149.8,
		Signal:    model.SignalNone,
		Compressed: model.CompressedSeries{
			BasePrice: 150.23,
			Deltas:    []float64{0.02, -0.01, 0.03, -0.02},
			Count:     5,
		},
	})
	if err != nil {
		t.Fatalf("record tick: %v", err)
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM ticks").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 tick row, got %d", count)
	}

	var deltas string
	if err := r.db.QueryRow("SELECT deltas FROM ticks").Scan(&deltas); err != nil {
		t.Fatal(err)
	}
	if deltas != "[0.02,-0.01,0.03,-0.02]" {
		t.Errorf("unexpected deltas JSON: %s", deltas)
	}
}

func TestRecordSignal(t *testing.T) {
	r := openTestRecorder(t)
	err := r.RecordSignal(&SignalEventRecord{
		Symbol:  "AAPL",
		Signal:  model.SignalBuy,
		Price:   151.2,
		ShortMA: 150.9,
		LongMA:  150.7,
	})
	if err != nil {
		t.Fatalf("record signal: %v", err)
	}

	var sig string
	if err := r.db.QueryRow("SELECT signal FROM signal_events").Scan(&sig); err != nil {
		t.Fatal(err)
	}
	if sig != "BUY" {
		t.Errorf("expected BUY, got %s", sig)
	}
}

func TestRecordBacktest(t *testing.T) {
	r := openTestRecorder(t)
	entry := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	run := &BacktestRun{
		Symbol:         "AAPL",
		ShortWindow:    5,
		LongWindow:     20,
		InitialCapital: 10000,
		Report: model.Report{
			TotalTrades:    1,
			WinningTrades:  1,
			WinRate:        1,
			InitialCapital: 10000,
			FinalCapital:   11000,
			TotalReturn:    1000,
			TotalReturnPct: 10,
			Verdict:        model.VerdictProfitable,
		},
		Trades: []model.Trade{{
			EntryTime:  entry,
			ExitTime:   entry.AddDate(0, 0, 3),
			EntryPrice: 100,
			ExitPrice:  110,
			Shares:     100,
			Profit:     1000,
			ProfitPct:  10,
		}},
	}
	if err := r.RecordBacktest(run); err != nil {
		t.Fatalf("record backtest: %v", err)
	}
	if run.ID == "" {
		t.Error("expected an assigned run ID")
	}

	var trades int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM trades WHERE run_id = ?", run.ID).Scan(&trades); err != nil {
		t.Fatal(err)
	}
	if trades != 1 {
		t.Errorf("expected 1 trade row for run, got %d", trades)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordTick(&TickSnapshot{}); err != nil {
		t.Errorf("noop RecordTick: %v", err)
	}
	if err := r.RecordBacktest(&BacktestRun{}); err != nil {
		t.Errorf("noop RecordBacktest: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("noop Close: %v", err)
	}
}
