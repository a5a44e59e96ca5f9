package backtest

import (
	"encoding/json"
	"math"
	"time"

	"github.com/yourusername/signal-desk/internal/models"
)

// Report summarizes a backtest run. Percentages (total return, win rate,
// drawdowns) are expressed in percent, not fractions. ProfitFactor is
// math.Inf(1) when the run had winners and no losers; JSON exports substitute
// math.MaxFloat64 since JSON cannot encode infinity.
type Report struct {
	Symbol          string    `json:"symbol"`
	Strategy        string    `json:"strategy"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	InitialCapital  float64   `json:"initial_capital"`
	FinalCapital    float64   `json:"final_capital"`
	TotalReturn     float64   `json:"total_return"`
	AnnualReturn    float64   `json:"annual_return"`
	SharpeRatio     float64   `json:"sharpe_ratio"`
	MaxDrawdown     float64   `json:"max_drawdown"`
	TotalTrades     int       `json:"total_trades"`
	WinningTrades   int       `json:"winning_trades"`
	LosingTrades    int       `json:"losing_trades"`
	WinRate         float64   `json:"win_rate"`
	ProfitFactor    float64   `json:"profit_factor"`
	BestTrade       float64   `json:"best_trade"`
	WorstTrade      float64   `json:"worst_trade"`
	AvgDurationBars float64   `json:"avg_duration_bars"`
	EquityCurve     []float64 `json:"equity_curve"`
	DrawdownCurve   []float64 `json:"drawdown_curve"`
}

// BuildReport reduces a finished run to its report. An empty ledger yields
// all-zero metrics with a one-point equity curve, never an error.
func BuildReport(state *State, cfg Config, series models.PriceSeries) Report {
	report := Report{
		Symbol:         cfg.Symbol,
		Strategy:       cfg.Strategy,
		InitialCapital: cfg.InitialCapital,
		FinalCapital:   cfg.InitialCapital,
		EquityCurve:    []float64{cfg.InitialCapital},
		DrawdownCurve:  []float64{0},
	}
	if len(series) > 0 {
		report.StartDate = series[0].Timestamp
		report.EndDate = series[len(series)-1].Timestamp
	}
	if state == nil || len(state.Trades) == 0 {
		return report
	}

	trades := state.Trades
	report.FinalCapital = state.CurrentCapital
	report.TotalTrades = len(trades)
	report.TotalReturn = trades.NetPnL() / cfg.InitialCapital * 100
	report.EquityCurve = state.EquityCurve.Values()
	report.DrawdownCurve = state.EquityCurve.Drawdowns()
	report.MaxDrawdown = maxFloat(report.DrawdownCurve)

	pnlPcts := make([]float64, len(trades))
	var grossProfit, grossLoss, durationSum float64
	report.BestTrade = trades[0].PnLPct
	report.WorstTrade = trades[0].PnLPct
	for i, trade := range trades {
		pnlPcts[i] = trade.PnLPct
		durationSum += float64(trade.DurationBars)
		if trade.PnL > 0 {
			report.WinningTrades++
			grossProfit += trade.PnL
		} else {
			report.LosingTrades++
			grossLoss += math.Abs(trade.PnL)
		}
		if trade.PnLPct > report.BestTrade {
			report.BestTrade = trade.PnLPct
		}
		if trade.PnLPct < report.WorstTrade {
			report.WorstTrade = trade.PnLPct
		}
	}

	report.WinRate = float64(report.WinningTrades) / float64(len(trades)) * 100
	report.ProfitFactor = profitFactor(grossProfit, grossLoss)
	report.AvgDurationBars = durationSum / float64(len(trades))
	report.SharpeRatio = sharpeRatio(pnlPcts)
	report.AnnualReturn = annualReturn(report.TotalReturn, trades)

	return report
}

// ToJSON exports the report, substituting math.MaxFloat64 for an infinite
// profit factor.
func (r Report) ToJSON() (string, error) {
	clone := r
	if math.IsInf(clone.ProfitFactor, 1) {
		clone.ProfitFactor = math.MaxFloat64
	}
	data, err := json.Marshal(clone)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return grossProfit / grossLoss
}

// sharpeRatio is the simplified per-trade variant: mean over population
// standard deviation of trade return percentages.
func sharpeRatio(pnlPcts []float64) float64 {
	if len(pnlPcts) == 0 {
		return 0
	}
	std := stddev(pnlPcts)
	if std == 0 {
		return 0
	}
	return average(pnlPcts) / std
}

// annualReturn scales the total return by 365 over the span in days between
// the first entry and the last exit.
func annualReturn(totalReturn float64, trades models.TradeLedger) float64 {
	days := trades[len(trades)-1].ExitAt.Sub(trades[0].EntryAt).Hours() / 24
	if days <= 0 {
		return 0
	}
	return totalReturn * 365 / days
}

func maxFloat(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func sortFloats(values []float64) {
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if values[j] < values[i] {
				values[i], values[j] = values[j], values[i]
			}
		}
	}
}
