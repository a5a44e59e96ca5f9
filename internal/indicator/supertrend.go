package indicator

import "github.com/yourusername/signal-desk/internal/models"

// TrendDirection is the regime reported by the Supertrend indicator.
type TrendDirection string

// Trend directions
const (
	TrendUp   TrendDirection = "UPTREND"
	TrendDown TrendDirection = "DOWNTREND"
)

// SupertrendValue is one sample of the Supertrend series. Level is the band
// acting as the active trend line: the lower band while in an uptrend
// (support below price), the upper band while in a downtrend (resistance
// above price).
type SupertrendValue struct {
	Level     float64        `json:"level"`
	Upper     float64        `json:"upper"`
	Lower     float64        `json:"lower"`
	Direction TrendDirection `json:"direction"`
	Defined   bool           `json:"defined"`
}

// Supertrend computes ATR-banded trend state over the bars. Bands are sticky:
// the upper band only ratchets down (and the lower band only ratchets up)
// unless the prior close already broke through, which resets the band to its
// raw candidate. Direction flips only when the close crosses the opposite
// band; between the bands the previous direction carries forward.
//
// The first defined bar starts in a downtrend with the raw band candidates,
// so an immediate close above the upper band on the next bar registers as a
// genuine flip.
func Supertrend(series models.PriceSeries, period int, multiplier float64) []SupertrendValue {
	out := make([]SupertrendValue, len(series))
	if len(series) <= period {
		return out
	}

	atr := averageTrueRange(series, period)

	for i := period; i < len(series); i++ {
		bar := series[i]
		hl2 := (bar.High + bar.Low) / 2
		candUpper := hl2 + multiplier*atr[i]
		candLower := hl2 - multiplier*atr[i]

		prev := out[i-1]
		if !prev.Defined {
			out[i] = SupertrendValue{
				Level:     candUpper,
				Upper:     candUpper,
				Lower:     candLower,
				Direction: TrendDown,
				Defined:   true,
			}
			continue
		}

		prevClose := series[i-1].Close
		upper := prev.Upper
		if candUpper < prev.Upper || prevClose > prev.Upper {
			upper = candUpper
		}
		lower := prev.Lower
		if candLower > prev.Lower || prevClose < prev.Lower {
			lower = candLower
		}

		direction := prev.Direction
		switch {
		case bar.Close <= lower:
			direction = TrendDown
		case bar.Close >= upper:
			direction = TrendUp
		}

		level := upper
		if direction == TrendUp {
			level = lower
		}
		out[i] = SupertrendValue{
			Level:     level,
			Upper:     upper,
			Lower:     lower,
			Direction: direction,
			Defined:   true,
		}
	}
	return out
}

// averageTrueRange returns the simple moving average of the true range. The
// first bar's true range falls back to its high-low spread since no prior
// close exists.
func averageTrueRange(series models.PriceSeries, period int) []float64 {
	tr := make([]float64, len(series))
	for i, bar := range series {
		if i == 0 {
			tr[i] = bar.High - bar.Low
			continue
		}
		prevClose := series[i-1].Close
		spread := bar.High - bar.Low
		highGap := abs(bar.High - prevClose)
		lowGap := abs(bar.Low - prevClose)
		tr[i] = max3(spread, highGap, lowGap)
	}

	atr := make([]float64, len(series))
	var window float64
	for i, v := range tr {
		window += v
		if i >= period {
			window -= tr[i-period]
		}
		if i >= period-1 {
			atr[i] = window / float64(period)
		}
	}
	return atr
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
