package strategy

import (
	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

// TrendFollowing signals only when Supertrend and MACD agree on the regime:
// an uptrend with the MACD line above its signal line buys, the mirror image
// sells. Disagreement holds.
type TrendFollowing struct{}

func (TrendFollowing) Name() string { return NameTrendFollowing }

func (TrendFollowing) Signals(series models.PriceSeries, set *indicator.Set, cfg indicator.Config) []models.Direction {
	out := holdSeries(len(series))
	for i := range series {
		st := set.Supertrend[i]
		macd := set.MACD[i]
		if !st.Defined || !macd.Defined {
			continue
		}
		switch {
		case st.Direction == indicator.TrendUp && macd.MACD > macd.Signal:
			out[i] = models.DirectionBuy
		case st.Direction == indicator.TrendDown && macd.MACD < macd.Signal:
			out[i] = models.DirectionSell
		}
	}
	return out
}
