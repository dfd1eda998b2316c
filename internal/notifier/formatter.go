package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"trendwatch/internal/backtest"
	"trendwatch/internal/model"
	"trendwatch/internal/strategy"
)

// signalFormat returns the emoji, embed color, and title for a signal.
func signalFormat(sig model.Signal) (emoji string, color int, title string) {
	switch sig {
	case model.SignalBuy:
		return "🟢", 3066993, "BUY SIGNAL DETECTED" // green
	case model.SignalSell:
		return "🔴", 15158332, "SELL SIGNAL DETECTED" // red
	default:
		return "⚪", 9807270, "TRADING ALERT" // gray
	}
}

// signalEmbed builds the Discord embed for a detected signal.
func signalEmbed(symbol string, sig model.Signal, snap *strategy.Snapshot, now time.Time) embed {
	emoji, color, title := signalFormat(sig)
	e := embed{
		Title:       fmt.Sprintf("%s %s", emoji, title),
		Description: fmt.Sprintf("**%s** trading signal detected", symbol),
		Color:       color,
		Fields: []embedField{
			{Name: "Signal Type", Value: string(sig), Inline: true},
		},
		Footer: embedFooter{Text: fmt.Sprintf("trendwatch • %s", now.Format("2006-01-02 15:04:05"))},
	}
	if snap != nil {
		e.Fields = append(e.Fields,
			embedField{Name: "Current Price", Value: fmt.Sprintf("$%.2f", snap.Price), Inline: true},
			embedField{Name: "Short MA", Value: fmt.Sprintf("$%.2f", snap.ShortMA), Inline: true},
			embedField{Name: "Long MA", Value: fmt.Sprintf("$%.2f", snap.LongMA), Inline: true},
		)
	}
	return e
}

// FormatBacktestReport renders a backtest result for CLI output or a
// plain-text Discord message.
func FormatBacktestReport(symbol string, res *backtest.Result) string {
	r := res.Report
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 Backtest Report | %s\n\n", symbol))

	b.WriteString("Trading Performance:\n")
	b.WriteString(fmt.Sprintf("  Total Trades:     %d\n", r.TotalTrades))
	b.WriteString(fmt.Sprintf("  Winning Trades:   %d\n", r.WinningTrades))
	b.WriteString(fmt.Sprintf("  Losing Trades:    %d\n", r.LosingTrades))
	if r.TotalTrades > 0 {
		b.WriteString(fmt.Sprintf("  Win Rate:         %.2f%%\n", r.WinRate*100))
	} else {
		b.WriteString("  Win Rate:         n/a (no trades)\n")
	}

	b.WriteString("\nFinancial Performance:\n")
	b.WriteString(fmt.Sprintf("  Initial Capital:  $%s\n", humanize.CommafWithDigits(r.InitialCapital, 2)))
	b.WriteString(fmt.Sprintf("  Final Capital:    $%s\n", humanize.CommafWithDigits(r.FinalCapital, 2)))
	b.WriteString(fmt.Sprintf("  Total Return:     $%s (%+.2f%%)\n",
		humanize.CommafWithDigits(r.TotalReturn, 2), r.TotalReturnPct))

	if r.TotalTrades > 0 {
		b.WriteString("\nTrade Statistics:\n")
		b.WriteString(fmt.Sprintf("  Avg Profit/Trade: $%s\n", humanize.CommafWithDigits(r.AvgProfit, 2)))
		b.WriteString(fmt.Sprintf("  Best Trade:       $%s\n", humanize.CommafWithDigits(r.BestTrade, 2)))
		b.WriteString(fmt.Sprintf("  Worst Trade:      $%s\n", humanize.CommafWithDigits(r.WorstTrade, 2)))
	}
	b.WriteString(fmt.Sprintf("  Max Drawdown:     %.2f%%\n", r.MaxDrawdown*100))

	if res.Open != nil {
		b.WriteString("\nOpen Position (not auto-closed):\n")
		b.WriteString(fmt.Sprintf("  Entered %s at $%.2f, %.4f shares\n",
			res.Open.EntryTime.Format("2006-01-02"), res.Open.EntryPrice, res.Open.Shares))
		b.WriteString(fmt.Sprintf("  Unrealized P/L:   $%s at mark $%.2f\n",
			humanize.CommafWithDigits(res.Open.UnrealizedProfit, 2), res.Open.MarkPrice))
	}

	b.WriteString(fmt.Sprintf("\nVerdict: %s\n", r.Verdict))
	return b.String()
}
