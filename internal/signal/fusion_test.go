package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

func vote(dir models.Direction) models.SignalVote {
	return models.SignalVote{Source: "test", Direction: dir, Weight: 1}
}

func TestFuseScoreMapping(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	buy := vote(models.DirectionBuy)
	sell := vote(models.DirectionSell)
	hold := vote(models.DirectionHold)

	cases := []struct {
		name       string
		votes      []models.SignalVote
		direction  models.Direction
		confidence float64
	}{
		{"unanimous buy", []models.SignalVote{buy, buy, buy}, models.DirectionStrongBuy, 100},
		{"two buys one hold", []models.SignalVote{buy, buy, hold}, models.DirectionStrongBuy, 100.0 * 2 / 3},
		{"single buy", []models.SignalVote{buy, hold, hold}, models.DirectionBuy, 100.0 / 3},
		{"tie resolves to hold", []models.SignalVote{buy, sell, hold}, models.DirectionHold, 0},
		{"single sell", []models.SignalVote{sell, hold, hold}, models.DirectionSell, 100.0 / 3},
		{"unanimous sell", []models.SignalVote{sell, sell, sell}, models.DirectionStrongSell, 100},
		{"no votes", nil, models.DirectionHold, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fused := Fuse("BTC-USD", tc.votes, now)
			assert.Equal(t, tc.direction, fused.Direction)
			assert.InDelta(t, tc.confidence, fused.Confidence, 1e-9)
			assert.Equal(t, now, fused.Timestamp)
		})
	}
}

func TestFuseIsDeterministicOverVotes(t *testing.T) {
	now := time.Now().UTC()
	votes := []models.SignalVote{vote(models.DirectionBuy), vote(models.DirectionBuy), vote(models.DirectionSell)}

	a := Fuse("ETH-USD", votes, now)
	b := Fuse("ETH-USD", votes, now)
	assert.Equal(t, a.Direction, b.Direction)
	assert.Equal(t, a.Confidence, b.Confidence)
	assert.Equal(t, a.Votes, b.Votes)
}

func TestFuseStrongVariantsCountStrongVotes(t *testing.T) {
	votes := []models.SignalVote{vote(models.DirectionStrongBuy), vote(models.DirectionBuy), vote(models.DirectionHold)}
	fused := Fuse("BTC-USD", votes, time.Now())
	assert.Equal(t, models.DirectionStrongBuy, fused.Direction)
}

func flatIndicatorSeries(n int) models.PriceSeries {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, n)
	for i := range series {
		series[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
			Open:      100, High: 101, Low: 99, Close: 100,
			Volume: 1000,
		}
	}
	return series
}

func TestVotesAtWarmupAllHold(t *testing.T) {
	series := flatIndicatorSeries(40)
	cfg := indicator.DefaultConfig()
	set, err := indicator.Compute(series, cfg)
	require.NoError(t, err)

	votes := VotesAt(set, cfg, 5)
	require.Len(t, votes, 3)
	for _, v := range votes {
		assert.Equal(t, models.DirectionHold, v.Direction, "source %s", v.Source)
	}
}

func TestEvaluateFlatSeriesDowntrendVote(t *testing.T) {
	fused, err := Evaluate("BTC-USD", flatIndicatorSeries(40), indicator.DefaultConfig())
	require.NoError(t, err)

	// RSI sits at 50, no MACD crossover; only the downtrend vote remains.
	assert.Equal(t, models.DirectionSell, fused.Direction)
	require.Len(t, fused.Votes, 3)
	assert.Equal(t, "BTC-USD", fused.Symbol)
}

func TestEvaluateEmptySeries(t *testing.T) {
	fused, err := Evaluate("BTC-USD", nil, indicator.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, models.DirectionHold, fused.Direction)
	assert.Zero(t, fused.Confidence)
	assert.Empty(t, fused.Votes)
}
