package strategy

import (
	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

// Mean-reversion entry thresholds, deliberately tighter than the display
// zones so the strategy only acts on pronounced extremes.
const (
	reversionOversold   = 25.0
	reversionOverbought = 75.0
)

// RSIMeanReversion buys deep oversold readings and sells deep overbought
// ones, ignoring the trend indicators entirely.
type RSIMeanReversion struct{}

func (RSIMeanReversion) Name() string { return NameRSIMeanReversion }

func (RSIMeanReversion) Signals(series models.PriceSeries, set *indicator.Set, cfg indicator.Config) []models.Direction {
	out := holdSeries(len(series))
	for i := range series {
		rsi := set.RSI[i]
		if !rsi.Defined {
			continue
		}
		switch {
		case rsi.V < reversionOversold:
			out[i] = models.DirectionBuy
		case rsi.V > reversionOverbought:
			out[i] = models.DirectionSell
		}
	}
	return out
}
