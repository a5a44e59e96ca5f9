package strategy

import (
	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

// Breakout lookback windows.
const (
	breakoutRange     = 20
	breakoutVolumeAvg = 10
)

// Breakout trades range breaks: a close above the prior 20-bar high buys, a
// close below the prior 20-bar low sells, in both cases only when the bar's
// volume exceeds its 10-bar average. It reads raw OHLCV and needs no
// indicator warm-up.
type Breakout struct{}

func (Breakout) Name() string { return NameBreakout }

func (Breakout) Signals(series models.PriceSeries, set *indicator.Set, cfg indicator.Config) []models.Direction {
	out := holdSeries(len(series))
	for i := breakoutRange; i < len(series); i++ {
		high := series[i-breakoutRange].High
		low := series[i-breakoutRange].Low
		for j := i - breakoutRange + 1; j < i; j++ {
			if series[j].High > high {
				high = series[j].High
			}
			if series[j].Low < low {
				low = series[j].Low
			}
		}

		var volSum float64
		from := i - breakoutVolumeAvg + 1
		for j := from; j <= i; j++ {
			volSum += series[j].Volume
		}
		avgVol := volSum / float64(breakoutVolumeAvg)

		bar := series[i]
		if bar.Volume <= avgVol {
			continue
		}
		switch {
		case bar.Close > high:
			out[i] = models.DirectionBuy
		case bar.Close < low:
			out[i] = models.DirectionSell
		}
	}
	return out
}
