// Package backtest replays the crossover strategy over a historical price
// series and reports how the simulated trades performed.
package backtest

import (
	"fmt"
	"time"

	"trendwatch/internal/calculator"
	"trendwatch/internal/model"
	"trendwatch/internal/strategy"
)

// Engine simulates a single-position, long-only strategy. Each run owns its
// own ledger and report, so independent runs (e.g. a window-parameter sweep)
// may execute in parallel over read-only series.
type Engine struct {
	InitialCapital float64
}

// Result bundles the trade ledger with the aggregate report. Open is non-nil
// when a LONG position was still held at the end of the series; it is never
// auto-closed and stays out of the realized trade statistics.
type Result struct {
	Trades []model.Trade
	Open   *model.OpenPosition
	Report model.Report
}

// New creates an Engine with the given starting capital.
func New(initialCapital float64) *Engine {
	return &Engine{InitialCapital: initialCapital}
}

// Run replays the series through the crossover strategy. The series is
// processed strictly in order: a signal acts only on data up to its own
// timestamp, never on later points.
//
// Shares are fractional (cash / entry price, full deployment). A series
// shorter than max(short, long)+1 points cannot produce a single aligned
// pair and yields ErrInsufficientData instead of partial statistics.
func (e *Engine) Run(series *model.PriceSeries, shortWindow, longWindow int) (*Result, error) {
	if e.InitialCapital <= 0 {
		return nil, fmt.Errorf("backtest: initial capital %v must be positive: %w",
			e.InitialCapital, model.ErrInvalidConfig)
	}
	if shortWindow <= 0 || longWindow <= 0 || shortWindow >= longWindow {
		return nil, fmt.Errorf("backtest: windows %d/%d invalid: %w",
			shortWindow, longWindow, model.ErrInvalidConfig)
	}
	need := longWindow
	if shortWindow > need {
		need = shortWindow
	}
	need++
	if series.Len() < need {
		return nil, fmt.Errorf("backtest: need at least %d points, have %d: %w",
			need, series.Len(), model.ErrInsufficientData)
	}

	shortMA, err := calculator.MovingAverage(series, shortWindow)
	if err != nil {
		return nil, err
	}
	longMA, err := calculator.MovingAverage(series, longWindow)
	if err != nil {
		return nil, err
	}
	events := strategy.Crossovers(shortMA, longMA)

	var (
		trades     []model.Trade
		long       bool
		shares     float64
		entryPrice float64
		entryTime  time.Time
	)
	cash := e.InitialCapital
	peak := e.InitialCapital
	maxDrawdown := 0.0
	ei := 0

	for _, p := range series.Points {
		sig := model.SignalNone
		for ei < len(events) && !events[ei].Time.After(p.Time) {
			if events[ei].Time.Equal(p.Time) {
				sig = events[ei].Signal
			}
			ei++
		}

		switch {
		case sig == model.SignalBuy && !long:
			shares = cash / p.Price
			entryPrice = p.Price
			entryTime = p.Time
			cash = 0
			long = true
		case sig == model.SignalSell && long:
			proceeds := shares * p.Price
			trades = append(trades, model.Trade{
				EntryTime:  entryTime,
				ExitTime:   p.Time,
				EntryPrice: entryPrice,
				ExitPrice:  p.Price,
				Shares:     shares,
				Profit:     proceeds - shares*entryPrice,
				ProfitPct:  (p.Price - entryPrice) / entryPrice * 100,
			})
			cash += proceeds
			shares = 0
			long = false
		}
		// SELL while FLAT and BUY while LONG are no-ops: the strategy
		// holds at most one position and never pyramids.

		value := cash
		if long {
			value = cash + shares*p.Price
		}
		if value > peak {
			peak = value
		}
		if dd := (peak - value) / peak; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}

	var open *model.OpenPosition
	final := cash
	if long {
		last := series.Points[series.Len()-1]
		open = &model.OpenPosition{
			EntryTime:        entryTime,
			EntryPrice:       entryPrice,
			Shares:           shares,
			MarkPrice:        last.Price,
			UnrealizedProfit: (last.Price - entryPrice) * shares,
		}
		final = cash + shares*last.Price
	}

	return &Result{
		Trades: trades,
		Open:   open,
		Report: e.buildReport(trades, final, maxDrawdown),
	}, nil
}

func (e *Engine) buildReport(trades []model.Trade, finalCapital, maxDrawdown float64) model.Report {
	r := model.Report{
		TotalTrades:    len(trades),
		InitialCapital: e.InitialCapital,
		FinalCapital:   finalCapital,
		TotalReturn:    finalCapital - e.InitialCapital,
		MaxDrawdown:    maxDrawdown,
	}
	r.TotalReturnPct = r.TotalReturn / e.InitialCapital * 100

	if len(trades) > 0 {
		sum := 0.0
		best, worst := trades[0].Profit, trades[0].Profit
		for _, t := range trades {
			if t.Profit > 0 {
				r.WinningTrades++
			} else {
				r.LosingTrades++
			}
			sum += t.Profit
			if t.Profit > best {
				best = t.Profit
			}
			if t.Profit < worst {
				worst = t.Profit
			}
		}
		r.WinRate = float64(r.WinningTrades) / float64(len(trades))
		r.AvgProfit = sum / float64(len(trades))
		r.BestTrade = best
		r.WorstTrade = worst
	}

	r.Verdict = verdictFor(r.TotalReturnPct)
	return r
}

// verdictFor classifies the total return percentage. Exactly zero is
// break-even, not profitable.
func verdictFor(returnPct float64) model.Verdict {
	switch {
	case returnPct > 10:
		return model.VerdictExcellent
	case returnPct > 0:
		return model.VerdictProfitable
	case returnPct == 0:
		return model.VerdictBreakEven
	default:
		return model.VerdictNeedsImprovement
	}
}
