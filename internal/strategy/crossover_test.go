package strategy

import (
	"errors"
	"testing"
	"time"

	"trendwatch/internal/calculator"
	"trendwatch/internal/model"
)

func makeSeries(prices ...float64) *model.PriceSeries {
	base := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Time: base.Add(time.Duration(i) * 5 * time.Minute), Price: p}
	}
	return &model.PriceSeries{Symbol: "TEST", Points: points}
}

func mas(t *testing.T, series *model.PriceSeries, window int) []model.MAPoint {
	t.Helper()
	ma, err := calculator.MovingAverage(series, window)
	if err != nil {
		t.Fatalf("moving average: %v", err)
	}
	return ma
}

func TestClassify(t *testing.T) {
	tests := []struct {
		prev, curr float64
		want       model.Signal
	}{
		{-0.5, 0.5, model.SignalBuy},
		{0, 0.5, model.SignalBuy},
		{0.5, -0.5, model.SignalSell},
		{0, -0.5, model.SignalSell},
		{0.5, 0.7, model.SignalNone},
		{-0.5, -0.7, model.SignalNone},
		{0.5, 0, model.SignalNone},
		{-0.5, 0, model.SignalNone},
		{0, 0, model.SignalNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.prev, tt.curr); got != tt.want {
			t.Errorf("Classify(%v, %v): expected %s, got %s", tt.prev, tt.curr, tt.want, got)
		}
	}
}

func TestCrossovers_KnownSeries(t *testing.T) {
	series := makeSeries(100, 102, 101, 99, 105, 103)
	events := Crossovers(mas(t, series, 2), mas(t, series, 3))

	// Aligned points cover series indices 2..5. Diffs run +0.5, -2/3,
	// +1/3, +5/3, so the sign flips down at index 3 and back up at 4.
	want := []model.Signal{model.SignalNone, model.SignalSell, model.SignalBuy, model.SignalNone}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, e := range events {
		if e.Signal != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], e.Signal)
		}
		if !e.Time.Equal(series.Points[i+2].Time) {
			t.Errorf("event %d: misaligned timestamp %s", i, e.Time)
		}
	}
}

func TestCrossovers_NoSignalWithoutSignChange(t *testing.T) {
	// Strictly rising prices keep the short MA above the long MA.
	series := makeSeries(100, 101, 102, 103, 104, 105, 106, 107)
	events := Crossovers(mas(t, series, 2), mas(t, series, 4))
	for i, e := range events {
		if e.Signal != model.SignalNone {
			t.Errorf("event %d: expected NONE on unchanged sign, got %s", i, e.Signal)
		}
	}
}

func TestCrossovers_FlatSeriesStaysSilent(t *testing.T) {
	// Identical prices pin the diff at exactly zero; equality never signals.
	prices := make([]float64, 50)
	for i := range prices {
		prices[i] = 50
	}
	series := makeSeries(prices...)
	events := Crossovers(mas(t, series, 5), mas(t, series, 20))
	if len(events) == 0 {
		t.Fatal("expected aligned events for flat series")
	}
	for i, e := range events {
		if e.Signal != model.SignalNone {
			t.Errorf("event %d: expected NONE for flat series, got %s", i, e.Signal)
		}
	}
}

func TestCrossovers_Deterministic(t *testing.T) {
	series := makeSeries(100, 102, 101, 99, 105, 103, 108, 104)
	short, long := mas(t, series, 2), mas(t, series, 3)
	first := Crossovers(short, long)
	second := Crossovers(short, long)
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("event %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEvaluate_LatestPoint(t *testing.T) {
	// The most recent pair crosses from at-or-below to strictly above.
	series := makeSeries(100, 110, 100, 90, 100)
	sig, snap, err := Evaluate(series, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != model.SignalBuy {
		t.Errorf("expected BUY, got %s", sig)
	}
	if snap.Price != 100 {
		t.Errorf("expected snapshot price 100, got %v", snap.Price)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	series := makeSeries(100, 101, 102)
	if _, _, err := Evaluate(series, 5, 3); !errors.Is(err, model.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for inverted windows, got %v", err)
	}
	if _, _, err := Evaluate(series, 2, 10); !errors.Is(err, model.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for oversized window, got %v", err)
	}
}
