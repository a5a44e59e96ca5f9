package indicator

import "github.com/yourusername/signal-desk/internal/models"

// RSI computes the Relative Strength Index over closing prices using simple
// moving averages of gains and losses. The value at index i is defined once
// at least `period` deltas precede it, so the first defined index is period
// itself.
//
// Degenerate windows resolve deterministically: no losses with some gains is
// maximal strength (100), and a completely flat window is neutral (50).
func RSI(series models.PriceSeries, period int) []Value {
	out := make([]Value, len(series))
	if len(series) <= period {
		return out
	}

	closes := series.Closes()
	for i := period; i < len(closes); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			delta := closes[j] - closes[j-1]
			if delta > 0 {
				gains += delta
			} else {
				losses -= delta
			}
		}
		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		var rsi float64
		switch {
		case avgLoss == 0 && avgGain == 0:
			rsi = 50
		case avgLoss == 0:
			rsi = 100
		default:
			rs := avgGain / avgLoss
			rsi = 100 - 100/(1+rs)
		}
		out[i] = Value{V: rsi, Defined: true}
	}
	return out
}
