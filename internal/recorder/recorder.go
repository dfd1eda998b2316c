package recorder

import (
	"trendwatch/internal/model"
)

// TickSnapshot holds everything a monitor tick produces: the fetched
// series (stored compressed), the indicator values, and the evaluated
// signal.
type TickSnapshot struct {
	Symbol     string
	Points     int
	LastPrice  float64
	ShortMA    float64
	LongMA     float64
	Signal     model.Signal
	Compressed model.CompressedSeries
}

// SignalEventRecord is a BUY/SELL that passed deduplication and was
// handed to the notifier.
type SignalEventRecord struct {
	Symbol  string
	Signal  model.Signal
	Price   float64
	ShortMA float64
	LongMA  float64
}

// BacktestRun records a completed simulation with its ledger. ID is
// assigned by the recorder when empty.
type BacktestRun struct {
	ID             string
	Symbol         string
	ShortWindow    int
	LongWindow     int
	InitialCapital float64
	Report         model.Report
	Trades         []model.Trade
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordTick(snap *TickSnapshot) error
	RecordSignal(evt *SignalEventRecord) error
	RecordBacktest(run *BacktestRun) error
	Close() error
}
