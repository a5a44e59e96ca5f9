package backtest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yourusername/signal-desk/internal/models"
)

// WalkForwardConfig configures walk-forward validation over bar windows.
type WalkForwardConfig struct {
	Windows            int
	MinBarsPerWindow   int
	MinTradesPerWindow int
}

// WalkForwardWindow is one validated segment of the series.
type WalkForwardWindow struct {
	WindowID  int    `json:"window_id"`
	StartBar  int    `json:"start_bar"`
	EndBar    int    `json:"end_bar"`
	Report    Report `json:"report"`
	TradeRuns int    `json:"trade_runs"`
}

// WalkForwardResult aggregates the per-window outcomes.
type WalkForwardResult struct {
	Windows          []WalkForwardWindow `json:"windows"`
	MeanReturn       float64             `json:"mean_return"`
	MeanSharpe       float64             `json:"mean_sharpe"`
	MeanDrawdown     float64             `json:"mean_drawdown"`
	ConsistencyScore float64             `json:"consistency_score"`
}

// RunWalkForward splits the series into consecutive equally-sized windows
// and backtests each independently. A strategy that only profits on one
// stretch of the data scores poorly on consistency even when the full-series
// report looks strong.
func RunWalkForward(ctx context.Context, engine *Engine, series models.PriceSeries, cfg WalkForwardConfig) (WalkForwardResult, error) {
	if engine == nil {
		return WalkForwardResult{}, fmt.Errorf("engine is required")
	}
	if cfg.Windows <= 0 {
		cfg.Windows = 3
	}
	if cfg.MinBarsPerWindow <= 0 {
		cfg.MinBarsPerWindow = 40
	}

	windowSize := len(series) / cfg.Windows
	if windowSize < cfg.MinBarsPerWindow {
		// Too little data to split; validate the whole series as one window.
		cfg.Windows = 1
		windowSize = len(series)
	}

	windows := make([]WalkForwardWindow, 0, cfg.Windows)
	for w := 0; w < cfg.Windows; w++ {
		startBar := w * windowSize
		endBar := startBar + windowSize
		if w == cfg.Windows-1 {
			endBar = len(series)
		}
		if endBar-startBar == 0 {
			continue
		}

		state, report, err := engine.Run(ctx, series[startBar:endBar])
		if err != nil {
			return WalkForwardResult{}, err
		}
		if cfg.MinTradesPerWindow > 0 && len(state.Trades) < cfg.MinTradesPerWindow {
			continue
		}
		windows = append(windows, WalkForwardWindow{
			WindowID:  w + 1,
			StartBar:  startBar,
			EndBar:    endBar,
			Report:    report,
			TradeRuns: len(state.Trades),
		})
	}

	return aggregateWalkForward(windows), nil
}

func aggregateWalkForward(windows []WalkForwardWindow) WalkForwardResult {
	result := WalkForwardResult{Windows: windows}
	if len(windows) == 0 {
		return result
	}

	profitable := 0
	for _, w := range windows {
		result.MeanReturn += w.Report.TotalReturn
		result.MeanSharpe += w.Report.SharpeRatio
		result.MeanDrawdown += w.Report.MaxDrawdown
		if w.Report.TotalReturn > 0 {
			profitable++
		}
	}
	n := float64(len(windows))
	result.MeanReturn /= n
	result.MeanSharpe /= n
	result.MeanDrawdown /= n
	result.ConsistencyScore = float64(profitable) / n
	return result
}

// ToJSON exports the result.
func (w WalkForwardResult) ToJSON() string {
	data, _ := json.Marshal(w)
	return string(data)
}
