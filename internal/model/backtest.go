package model

import "time"

// Trade is a closed round-trip: a BUY entry later closed by a SELL.
// Immutable once recorded.
type Trade struct {
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	Shares     float64
	Profit     float64
	ProfitPct  float64
}

// OpenPosition describes a LONG position still held when the series ended.
// It is never auto-closed and never counts toward realized statistics.
type OpenPosition struct {
	EntryTime        time.Time
	EntryPrice       float64
	Shares           float64
	MarkPrice        float64
	UnrealizedProfit float64
}

// Verdict classifies a backtest by its total return percentage.
type Verdict string

const (
	VerdictExcellent        Verdict = "excellent"
	VerdictProfitable       Verdict = "profitable"
	VerdictBreakEven        Verdict = "break-even"
	VerdictNeedsImprovement Verdict = "needs improvement"
)

// Report aggregates a full backtest run. WinRate and MaxDrawdown are
// fractions in [0, 1]; formatting to percent belongs to the presentation
// layer. FinalCapital is the ending portfolio value, so it includes the
// mark-to-market value of an open position.
type Report struct {
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRate        float64
	InitialCapital float64
	FinalCapital   float64
	TotalReturn    float64
	TotalReturnPct float64
	AvgProfit      float64
	BestTrade      float64
	WorstTrade     float64
	MaxDrawdown    float64
	Verdict        Verdict
}
