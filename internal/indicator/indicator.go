// Package indicator computes technical indicator series over OHLCV bars.
//
// Every output series is aligned index-for-index with the input price
// series. Bars inside an indicator's warm-up window carry an explicit
// undefined state rather than a plausible zero, so callers can tell "not yet
// computable" apart from a real value.
// Sequential state (Supertrend direction, MACD crossover memory) is
// carried by an explicit fold over the bar sequence, matching the true data
// dependency, rather than by independent per-index formulas.
package indicator

import (
	"fmt"

	"github.com/yourusername/signal-desk/internal/models"
)

// Value is one sample of a scalar indicator series. Defined reports whether
// the value could be computed for the bar.
type Value struct {
	V       float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// Config holds the indicator parameters for one computation. There are no
// package-level mutable defaults; callers pass a Config into every call.
type Config struct {
	RSIPeriod            int     `json:"rsi_period"`
	RSIOversold          float64 `json:"rsi_oversold"`
	RSIOverbought        float64 `json:"rsi_overbought"`
	SupertrendPeriod     int     `json:"supertrend_period"`
	SupertrendMultiplier float64 `json:"supertrend_multiplier"`
	MACDFast             int     `json:"macd_fast"`
	MACDSlow             int     `json:"macd_slow"`
	MACDSignal           int     `json:"macd_signal"`
}

// DefaultConfig returns the reference parameter set.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:            14,
		RSIOversold:          30,
		RSIOverbought:        70,
		SupertrendPeriod:     10,
		SupertrendMultiplier: 3.0,
		MACDFast:             12,
		MACDSlow:             26,
		MACDSignal:           9,
	}
}

// Validate rejects malformed parameters before any computation begins.
// These are programmer errors, unlike short input series which degrade to
// undefined values.
func (c Config) Validate() error {
	if c.RSIPeriod <= 0 {
		return fmt.Errorf("rsi period must be positive, got %d", c.RSIPeriod)
	}
	if c.RSIOversold <= 0 || c.RSIOverbought >= 100 || c.RSIOversold >= c.RSIOverbought {
		return fmt.Errorf("rsi thresholds must satisfy 0 < oversold < overbought < 100, got %.1f/%.1f", c.RSIOversold, c.RSIOverbought)
	}
	if c.SupertrendPeriod <= 0 {
		return fmt.Errorf("supertrend period must be positive, got %d", c.SupertrendPeriod)
	}
	if c.SupertrendMultiplier <= 0 {
		return fmt.Errorf("supertrend multiplier must be positive, got %.2f", c.SupertrendMultiplier)
	}
	if c.MACDFast <= 0 || c.MACDSlow <= 0 || c.MACDSignal <= 0 {
		return fmt.Errorf("macd spans must be positive, got %d/%d/%d", c.MACDFast, c.MACDSlow, c.MACDSignal)
	}
	if c.MACDFast >= c.MACDSlow {
		return fmt.Errorf("macd fast span must be shorter than slow span, got %d/%d", c.MACDFast, c.MACDSlow)
	}
	return nil
}

// Set bundles every indicator series computed for one price series. The
// slices share the price series length.
type Set struct {
	RSI        []Value
	Supertrend []SupertrendValue
	MACD       []MACDValue
}

// Compute calculates all indicator series for the given bars. The config is
// validated up front; a too-short series is not an error and yields
// all-undefined output.
func Compute(series models.PriceSeries, cfg Config) (*Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid indicator config: %w", err)
	}
	return &Set{
		RSI:        RSI(series, cfg.RSIPeriod),
		Supertrend: Supertrend(series, cfg.SupertrendPeriod, cfg.SupertrendMultiplier),
		MACD:       MACD(series, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
	}, nil
}
