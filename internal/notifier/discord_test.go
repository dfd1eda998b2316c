package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trendwatch/internal/backtest"
	"trendwatch/internal/model"
	"trendwatch/internal/strategy"
)

func TestSendSignal_Payload(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, "")
	snap := &strategy.Snapshot{Price: 151.2, ShortMA: 150.9, LongMA: 150.7}
	if err := n.SendSignal("AAPL", model.SignalBuy, snap); err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(got.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(got.Embeds))
	}
	e := got.Embeds[0]
	if e.Color != 3066993 {
		t.Errorf("expected BUY color 3066993, got %d", e.Color)
	}
	if !strings.Contains(e.Description, "AAPL") {
		t.Errorf("symbol missing from description: %s", e.Description)
	}
	if len(e.Fields) != 4 {
		t.Errorf("expected 4 fields with snapshot, got %d", len(e.Fields))
	}
}

func TestSend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, "")
	if err := n.SendText("hello"); err == nil {
		t.Error("expected error on 429 response")
	}
}

func TestSend_NotConfigured(t *testing.T) {
	n := NewDiscordNotifier("", "")
	if n.Configured() {
		t.Error("empty webhook reported configured")
	}
	if err := n.SendText("hello"); err == nil {
		t.Error("expected error when webhook is unset")
	}
}

func TestSendWithRetry_EventualSuccess(t *testing.T) {
	n := NewDiscordNotifier("unused", "")
	calls := 0
	err := n.SendWithRetry(context.Background(), 3, func() error {
		calls++
		if calls < 2 {
			return io.ErrUnexpectedEOF
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestFormatBacktestReport(t *testing.T) {
	res := &backtest.Result{
		Trades: []model.Trade{{Profit: 1000, ProfitPct: 10}},
		Report: model.Report{
			TotalTrades:    1,
			WinningTrades:  1,
			WinRate:        1,
			InitialCapital: 10000,
			FinalCapital:   11000,
			TotalReturn:    1000,
			TotalReturnPct: 10,
			AvgProfit:      1000,
			BestTrade:      1000,
			WorstTrade:     1000,
			MaxDrawdown:    1.0 / 12.0,
			Verdict:        model.VerdictProfitable,
		},
	}
	out := FormatBacktestReport("AAPL", res)

	for _, want := range []string{
		"AAPL",
		"Total Trades:     1",
		"Win Rate:         100.00%",
		"$10,000",
		"$11,000",
		"+10.00%",
		"profitable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Open Position") {
		t.Error("no open position expected in report")
	}
}

func TestFormatBacktestReport_NoTrades(t *testing.T) {
	res := &backtest.Result{
		Report: model.Report{
			InitialCapital: 10000,
			FinalCapital:   10000,
			Verdict:        model.VerdictBreakEven,
		},
	}
	out := FormatBacktestReport("AAPL", res)
	if !strings.Contains(out, "n/a (no trades)") {
		t.Errorf("expected no-trades win rate marker:\n%s", out)
	}
	if strings.Contains(out, "Trade Statistics") {
		t.Error("trade statistics printed without trades")
	}
}
