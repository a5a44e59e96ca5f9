package indicator

import "github.com/yourusername/signal-desk/internal/models"

// Crossover classifies the MACD line crossing its signal line on one bar.
type Crossover string

// Crossover events
const (
	CrossoverNone Crossover = "NONE"
	CrossoverBuy  Crossover = "BUY"
	CrossoverSell Crossover = "SELL"
)

// MACDValue is one sample of the MACD series. Crossover is only ever non-NONE
// on bars where both the current and previous samples are defined, since a
// crossing needs two points.
type MACDValue struct {
	MACD      float64   `json:"macd"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
	Crossover Crossover `json:"crossover"`
	Defined   bool      `json:"defined"`
}

// MACD computes the moving average convergence divergence series over closing
// prices. The MACD line is the fast EMA minus the slow EMA, the signal line
// is an EMA of the MACD line, and the histogram is their difference.
//
// Each EMA is seeded with its first input value. The MACD line is meaningful
// once the slow EMA has a full span behind it, and the signal line needs a
// further signal-span of MACD samples, so the series is defined from index
// slow+signalSpan-2.
func MACD(series models.PriceSeries, fast, slow, signalSpan int) []MACDValue {
	out := make([]MACDValue, len(series))
	firstDefined := slow + signalSpan - 2
	if len(series) <= firstDefined {
		return out
	}

	closes := series.Closes()
	emaFast := ema(closes, fast)
	emaSlow := ema(closes, slow)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = emaFast[i] - emaSlow[i]
	}
	// The signal EMA runs over MACD samples from the first meaningful one.
	signalLine := ema(macdLine[slow-1:], signalSpan)

	for i := firstDefined; i < len(closes); i++ {
		macd := macdLine[i]
		sig := signalLine[i-(slow-1)]
		out[i] = MACDValue{
			MACD:      macd,
			Signal:    sig,
			Histogram: macd - sig,
			Crossover: CrossoverNone,
			Defined:   true,
		}
		if prev := out[i-1]; prev.Defined {
			prevDiff := prev.MACD - prev.Signal
			diff := macd - sig
			switch {
			case diff > 0 && prevDiff <= 0:
				out[i].Crossover = CrossoverBuy
			case diff < 0 && prevDiff >= 0:
				out[i].Crossover = CrossoverSell
			}
		}
	}
	return out
}

// ema computes an exponential moving average with alpha 2/(span+1), seeded
// with the first value.
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
