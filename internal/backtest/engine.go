package backtest

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
	"github.com/yourusername/signal-desk/internal/strategy"
)

// Engine replays a price series bar-by-bar, turning strategy signals into
// simulated position changes with slippage and commission. Runs are
// independent; a single engine can back several sequential runs but holds no
// state between them.
type Engine struct {
	config   Config
	strategy strategy.Strategy
	logger   *logrus.Logger
}

// NewEngine creates a backtesting engine.
func NewEngine(cfg Config, strat strategy.Strategy, logger *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{config: cfg, strategy: strat, logger: logger}, nil
}

// Config returns the backtest configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run replays the series and returns the final state plus its report. An
// empty series yields an empty report, not an error; an unordered series is
// rejected.
func (e *Engine) Run(ctx context.Context, series models.PriceSeries) (*State, Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, Report{}, err
	}
	if err := series.Validate(); err != nil {
		return nil, Report{}, err
	}

	e.logger.WithFields(logrus.Fields{
		"symbol":   e.config.Symbol,
		"strategy": e.strategy.Name(),
		"bars":     len(series),
	}).Info("Starting backtest run")

	start := time.Time{}
	if len(series) > 0 {
		start = series[0].Timestamp
	}
	state := NewState(e.config.InitialCapital, start)
	if len(series) == 0 {
		return state, BuildReport(state, e.config, series), nil
	}

	set, err := indicator.Compute(series, e.config.Indicators)
	if err != nil {
		return nil, Report{}, err
	}
	signals := e.strategy.Signals(series, set, e.config.Indicators)

	for i, sig := range signals {
		switch {
		case sig.IsBuy():
			e.onBuySignal(state, series, i)
		case sig.IsSell():
			e.onSellSignal(state, series, i)
		}
	}
	e.forceClose(state, series)

	report := BuildReport(state, e.config, series)
	e.logger.WithFields(logrus.Fields{
		"trades":        report.TotalTrades,
		"final_capital": report.FinalCapital,
		"total_return":  report.TotalReturn,
	}).Info("Backtest run complete")

	return state, report, nil
}

// onBuySignal closes a short if one is open and goes long. A buy while
// already long is a no-op: no pyramiding, no re-entry.
func (e *Engine) onBuySignal(state *State, series models.PriceSeries, i int) {
	if pos := state.Position; pos != nil {
		if pos.Side == models.PositionLong {
			return
		}
		e.closePosition(state, series, i)
	}
	e.openPosition(state, series, i, models.PositionLong)
}

// onSellSignal closes a long if one is open and, when shorting is enabled,
// goes short.
func (e *Engine) onSellSignal(state *State, series models.PriceSeries, i int) {
	if pos := state.Position; pos != nil {
		if pos.Side == models.PositionShort {
			return
		}
		e.closePosition(state, series, i)
	}
	if e.config.AllowShort {
		e.openPosition(state, series, i, models.PositionShort)
	}
}

// openPosition sizes and opens a position at bar i. A zero quantity from
// insufficient capital silently skips the entry.
func (e *Engine) openPosition(state *State, series models.PriceSeries, i int, side models.PositionSide) {
	entry := e.fillPrice(series[i].Close, side == models.PositionLong)
	quantity := int64(math.Floor(state.CurrentCapital * e.config.PositionFraction / entry))
	if quantity <= 0 {
		return
	}
	state.Position = &models.Position{
		Side:       side,
		EntryPrice: entry,
		EntryAt:    series[i].Timestamp,
		EntryIndex: i,
		Quantity:   quantity,
	}
}

// closePosition exits the open position at bar i and records the trade.
func (e *Engine) closePosition(state *State, series models.PriceSeries, i int) {
	pos := state.Position
	exit := e.fillPrice(series[i].Close, pos.Side == models.PositionShort)

	qty := float64(pos.Quantity)
	gross := (exit - pos.EntryPrice) * qty
	if pos.Side == models.PositionShort {
		gross = (pos.EntryPrice - exit) * qty
	}
	commission := e.config.CommissionRate * (pos.EntryPrice + exit) * qty
	pnl := gross - commission

	notional := pos.EntryPrice * qty
	pnlPct := 0.0
	if notional > 0 {
		pnlPct = pnl / notional * 100
	}

	state.Position = nil
	state.RecordTrade(models.Trade{
		ID:           uuid.New(),
		Symbol:       e.config.Symbol,
		Side:         pos.Side,
		EntryAt:      pos.EntryAt,
		ExitAt:       series[i].Timestamp,
		EntryPrice:   pos.EntryPrice,
		ExitPrice:    exit,
		Quantity:     pos.Quantity,
		Commission:   commission,
		PnL:          pnl,
		PnLPct:       pnlPct,
		DurationBars: i - pos.EntryIndex,
	})
}

// forceClose liquidates any open position at the last bar so every run ends
// with a fully realized ledger.
func (e *Engine) forceClose(state *State, series models.PriceSeries) {
	if state.Position == nil || len(series) == 0 {
		return
	}
	e.closePosition(state, series, len(series)-1)
}

// fillPrice applies slippage: paying sides (long entries, short exits) fill
// above the quote, receiving sides below it.
func (e *Engine) fillPrice(price float64, paying bool) float64 {
	if paying {
		return price * (1 + e.config.SlippageRate)
	}
	return price * (1 - e.config.SlippageRate)
}
