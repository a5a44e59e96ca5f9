package strategy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

func barsFromCloses(closes []float64, volumes []float64) models.PriceSeries {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		vol := 1000.0
		if volumes != nil {
			vol = volumes[i]
		}
		series[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    vol,
		}
	}
	return series
}

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func flatCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100
	}
	return closes
}

func computeSet(t *testing.T, series models.PriceSeries, cfg indicator.Config) *indicator.Set {
	t.Helper()
	set, err := indicator.Compute(series, cfg)
	require.NoError(t, err)
	return set
}

func TestNewRegistry(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := New("momentum")
	assert.True(t, errors.Is(err, models.ErrUnknownStrategy))
}

func TestCombinedRisingSeriesBuysOnce(t *testing.T) {
	cfg := indicator.DefaultConfig()
	series := barsFromCloses(risingCloses(60), nil)
	signals := Combined{}.Signals(series, computeSet(t, series, cfg), cfg)

	require.Len(t, signals, len(series))
	firstBuy := -1
	for i, sig := range signals {
		switch sig {
		case models.DirectionBuy:
			if firstBuy < 0 {
				firstBuy = i
			}
		case models.DirectionSell:
			t.Fatalf("unexpected sell on a strictly rising series at index %d", i)
		}
	}
	// Uptrend plus bullish MACD agree from the first fully-defined bar on.
	require.GreaterOrEqual(t, firstBuy, 0, "expected the uptrend to trigger a buy")
	for i := firstBuy; i < len(signals); i++ {
		assert.Equal(t, models.DirectionBuy, signals[i], "index %d", i)
	}
}

func TestCombinedFlatSeriesHolds(t *testing.T) {
	cfg := indicator.DefaultConfig()
	series := barsFromCloses(flatCloses(30), nil)
	signals := Combined{}.Signals(series, computeSet(t, series, cfg), cfg)
	for i, sig := range signals {
		assert.Equal(t, models.DirectionHold, sig, "index %d", i)
	}
}

func TestRSIMeanReversion(t *testing.T) {
	cfg := indicator.DefaultConfig()
	cfg.RSIPeriod = 3

	// Rising window pushes RSI to 100 (> 75), then a hard fall drives it
	// toward 0 (< 25).
	closes := []float64{100, 102, 104, 106, 108, 110, 100, 90, 80, 70}
	series := barsFromCloses(closes, nil)
	signals := RSIMeanReversion{}.Signals(series, computeSet(t, series, cfg), cfg)

	assert.Equal(t, models.DirectionSell, signals[4], "overbought window should sell")
	assert.Equal(t, models.DirectionBuy, signals[8], "oversold window should buy")
	assert.Equal(t, models.DirectionHold, signals[1], "warm-up holds")
}

func TestTrendFollowingRequiresAgreement(t *testing.T) {
	cfg := indicator.DefaultConfig()
	series := barsFromCloses(risingCloses(60), nil)
	signals := TrendFollowing{}.Signals(series, computeSet(t, series, cfg), cfg)

	sawBuy := false
	for i, sig := range signals {
		if i < 33 {
			assert.Equal(t, models.DirectionHold, sig, "macd warm-up must hold at %d", i)
			continue
		}
		if sig == models.DirectionBuy {
			sawBuy = true
		}
		assert.NotEqual(t, models.DirectionSell, sig, "rising series must not sell at %d", i)
	}
	assert.True(t, sawBuy, "uptrend with bullish macd should buy")
}

func TestBreakoutSignals(t *testing.T) {
	cfg := indicator.DefaultConfig()

	// 25 flat bars, then a surge through the prior 20-bar high on triple
	// volume.
	closes := flatCloses(26)
	volumes := make([]float64, 26)
	for i := range volumes {
		volumes[i] = 1000
	}
	closes[25] = 110
	volumes[25] = 3000
	series := barsFromCloses(closes, volumes)

	signals := Breakout{}.Signals(series, computeSet(t, series, cfg), cfg)
	assert.Equal(t, models.DirectionBuy, signals[25])
	for i := 0; i < 25; i++ {
		assert.Equal(t, models.DirectionHold, signals[i], "index %d", i)
	}
}

func TestBreakoutVolumeWindowIsRecent(t *testing.T) {
	cfg := indicator.DefaultConfig()

	// Heavy volume early on, quiet last 10 bars. The break bar only beats the
	// 10-bar average; against any longer window it would be below average.
	closes := flatCloses(26)
	volumes := make([]float64, 26)
	for i := range volumes {
		if i < 16 {
			volumes[i] = 10000
		} else {
			volumes[i] = 100
		}
	}
	closes[25] = 110
	volumes[25] = 200
	series := barsFromCloses(closes, volumes)

	signals := Breakout{}.Signals(series, computeSet(t, series, cfg), cfg)
	assert.Equal(t, models.DirectionBuy, signals[25])
}

func TestBreakoutNeedsVolumeConfirmation(t *testing.T) {
	cfg := indicator.DefaultConfig()
	closes := flatCloses(26)
	closes[25] = 110
	series := barsFromCloses(closes, nil) // volume constant, never above average

	signals := Breakout{}.Signals(series, computeSet(t, series, cfg), cfg)
	assert.Equal(t, models.DirectionHold, signals[25], "break without volume must hold")
}
