// Package strategy turns computed indicator series into per-bar trade
// signals for the backtester. Each strategy is a pure rule over the shared
// indicator set; none of them mutate the series or keep state between runs.
package strategy

import (
	"fmt"

	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

// Strategy generates one Direction per bar of the price series. The returned
// slice is aligned index-for-index with the input; bars without a decision
// carry HOLD.
type Strategy interface {
	Name() string
	Signals(series models.PriceSeries, set *indicator.Set, cfg indicator.Config) []models.Direction
}

// Strategy names accepted by New.
const (
	NameCombined         = "combined"
	NameRSIMeanReversion = "rsi_mean_reversion"
	NameTrendFollowing   = "trend_following"
	NameBreakout         = "breakout"
)

// New returns the strategy registered under name.
func New(name string) (Strategy, error) {
	switch name {
	case NameCombined:
		return &Combined{}, nil
	case NameRSIMeanReversion:
		return &RSIMeanReversion{}, nil
	case NameTrendFollowing:
		return &TrendFollowing{}, nil
	case NameBreakout:
		return &Breakout{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStrategy, name)
	}
}

// Names lists every registered strategy name.
func Names() []string {
	return []string{NameCombined, NameRSIMeanReversion, NameTrendFollowing, NameBreakout}
}

func holdSeries(n int) []models.Direction {
	out := make([]models.Direction, n)
	for i := range out {
		out[i] = models.DirectionHold
	}
	return out
}
