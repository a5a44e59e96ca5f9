package backtest

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/signal-desk/internal/models"
)

func ledgerTrade(entry, exit time.Time, pnl, pnlPct float64, bars int) models.Trade {
	return models.Trade{
		ID:           uuid.New(),
		Symbol:       "TEST",
		Side:         models.PositionLong,
		EntryAt:      entry,
		ExitAt:       exit,
		EntryPrice:   100,
		ExitPrice:    100 + pnl/10,
		Quantity:     10,
		PnL:          pnl,
		PnLPct:       pnlPct,
		DurationBars: bars,
	}
}

func TestBuildReportEmptyLedger(t *testing.T) {
	cfg := testConfig()
	series := flatBars(5)
	state := NewState(cfg.InitialCapital, series[0].Timestamp)

	report := BuildReport(state, cfg, series)
	if report.TotalTrades != 0 || report.TotalReturn != 0 || report.WinRate != 0 || report.SharpeRatio != 0 {
		t.Fatalf("expected all-zero metrics, got %+v", report)
	}
	if len(report.EquityCurve) != 1 || report.EquityCurve[0] != cfg.InitialCapital {
		t.Fatalf("expected one-point equity curve, got %v", report.EquityCurve)
	}
	if len(report.DrawdownCurve) != 1 || report.DrawdownCurve[0] != 0 {
		t.Fatalf("expected one-point drawdown curve, got %v", report.DrawdownCurve)
	}
}

func TestBuildReportMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.InitialCapital = 1000
	series := risingBars(40)
	state := NewState(cfg.InitialCapital, series[0].Timestamp)

	day := 24 * time.Hour
	base := series[0].Timestamp
	// One winner, one loser, spanning 73 days so the annualization factor is 5.
	state.RecordTrade(ledgerTrade(base, base.Add(10*day), 100, 10, 10))
	state.RecordTrade(ledgerTrade(base.Add(20*day), base.Add(73*day), -27, -2.7, 53))

	report := BuildReport(state, cfg, series)

	if report.TotalTrades != 2 || report.WinningTrades != 1 || report.LosingTrades != 1 {
		t.Fatalf("trade counts wrong: %+v", report)
	}
	if math.Abs(report.TotalReturn-7.3) > 1e-9 {
		t.Fatalf("total return: want 7.3, got %f", report.TotalReturn)
	}
	if math.Abs(report.AnnualReturn-36.5) > 1e-9 {
		t.Fatalf("annual return: want 36.5, got %f", report.AnnualReturn)
	}
	if math.Abs(report.WinRate-50) > 1e-9 {
		t.Fatalf("win rate: want 50, got %f", report.WinRate)
	}
	if math.Abs(report.ProfitFactor-100.0/27.0) > 1e-9 {
		t.Fatalf("profit factor: want %f, got %f", 100.0/27.0, report.ProfitFactor)
	}
	if report.BestTrade != 10 || report.WorstTrade != -2.7 {
		t.Fatalf("best/worst: got %f/%f", report.BestTrade, report.WorstTrade)
	}
	if len(report.EquityCurve) != 3 {
		t.Fatalf("equity curve length: want 3, got %d", len(report.EquityCurve))
	}

	// Peak 1100 dips to 1073: drawdown 27/1100.
	wantDD := 27.0 / 1100.0 * 100
	if math.Abs(report.MaxDrawdown-wantDD) > 1e-9 {
		t.Fatalf("max drawdown: want %f, got %f", wantDD, report.MaxDrawdown)
	}
}

func TestProfitFactorConventions(t *testing.T) {
	if pf := profitFactor(10, 0); !math.IsInf(pf, 1) {
		t.Fatalf("winners without losers must report +Inf, got %f", pf)
	}
	if pf := profitFactor(0, 0); pf != 0 {
		t.Fatalf("no trades must report 0, got %f", pf)
	}
	if pf := profitFactor(10, 5); pf != 2 {
		t.Fatalf("want 2, got %f", pf)
	}
}

func TestSharpeRatioZeroDispersion(t *testing.T) {
	if s := sharpeRatio([]float64{5, 5, 5}); s != 0 {
		t.Fatalf("identical returns must yield 0, got %f", s)
	}
	if s := sharpeRatio(nil); s != 0 {
		t.Fatalf("empty returns must yield 0, got %f", s)
	}
	if s := sharpeRatio([]float64{1, 2, -1, 3}); s == 0 {
		t.Fatal("expected non-zero sharpe ratio")
	}
}

func TestReportToJSONInfiniteProfitFactor(t *testing.T) {
	report := Report{ProfitFactor: math.Inf(1)}
	out, err := report.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(out, "profit_factor") {
		t.Fatalf("missing profit_factor field: %s", out)
	}
}
