package backtest

import (
	"fmt"

	"github.com/yourusername/signal-desk/internal/config"
	"github.com/yourusername/signal-desk/internal/indicator"
)

// Config holds the parameters for one backtest run.
type Config struct {
	Symbol               string
	Strategy             string
	InitialCapital       float64
	PositionFraction     float64
	CommissionRate       float64
	SlippageRate         float64
	AllowShort           bool
	MonteCarloIterations int
	WalkForwardWindows   int
	OutputPath           string
	Indicators           indicator.Config
}

// FromConfig converts app config to backtest config.
func FromConfig(cfg *config.BacktestConfig, indicators indicator.Config) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}

	bt := Config{
		Symbol:               cfg.Symbol,
		Strategy:             cfg.Strategy,
		InitialCapital:       cfg.InitialCapital,
		PositionFraction:     cfg.PositionFraction,
		CommissionRate:       cfg.CommissionRate,
		SlippageRate:         cfg.SlippageRate,
		AllowShort:           cfg.AllowShort,
		MonteCarloIterations: cfg.MonteCarloIterations,
		WalkForwardWindows:   cfg.WalkForwardWindows,
		OutputPath:           cfg.OutputPath,
		Indicators:           indicators,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters.
func (c Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive")
	}
	if c.PositionFraction <= 0 || c.PositionFraction > 1 {
		return fmt.Errorf("position fraction must be in (0, 1]")
	}
	if c.CommissionRate < 0 || c.CommissionRate > 0.1 {
		return fmt.Errorf("commission rate must be between 0 and 0.1")
	}
	if c.SlippageRate < 0 || c.SlippageRate > 0.1 {
		return fmt.Errorf("slippage rate must be between 0 and 0.1")
	}
	return c.Indicators.Validate()
}
