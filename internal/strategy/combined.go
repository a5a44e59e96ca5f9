package strategy

import (
	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

// Combined requires at least two of the three indicators to agree before it
// signals. RSI contributes an event vote (the bar where it crosses into an
// extreme zone), while Supertrend direction and the MACD line's position
// relative to its signal line contribute state votes, so an established
// trend keeps reinforcing the entry side bar after bar.
type Combined struct{}

func (Combined) Name() string { return NameCombined }

func (Combined) Signals(series models.PriceSeries, set *indicator.Set, cfg indicator.Config) []models.Direction {
	out := holdSeries(len(series))
	for i := 1; i < len(series); i++ {
		var buys, sells int

		rsi, prevRSI := set.RSI[i], set.RSI[i-1]
		if rsi.Defined && prevRSI.Defined {
			switch {
			case rsi.V < cfg.RSIOversold && prevRSI.V >= cfg.RSIOversold:
				buys++
			case rsi.V > cfg.RSIOverbought && prevRSI.V <= cfg.RSIOverbought:
				sells++
			}
		}

		if st := set.Supertrend[i]; st.Defined {
			if st.Direction == indicator.TrendUp {
				buys++
			} else {
				sells++
			}
		}

		if macd := set.MACD[i]; macd.Defined {
			switch {
			case macd.MACD > macd.Signal:
				buys++
			case macd.MACD < macd.Signal:
				sells++
			}
		}

		switch {
		case buys >= 2:
			out[i] = models.DirectionBuy
		case sells >= 2:
			out[i] = models.DirectionSell
		}
	}
	return out
}
