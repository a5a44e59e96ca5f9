// Package signal fuses per-indicator votes into one directional signal with
// a confidence score. Fusion is a pure function of the vote set; callers get
// identical output for identical votes.
package signal

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/models"
)

// Vote source names
const (
	SourceRSI        = "rsi"
	SourceSupertrend = "supertrend"
	SourceMACD       = "macd"
)

// Fuse aggregates the votes into a single signal. The score is the number of
// BUY votes minus the number of SELL votes; two or more net agreeing votes
// upgrade the direction to its STRONG variant. Confidence scales linearly
// with the absolute score, so ties land at HOLD with zero confidence. An
// empty vote set is a valid HOLD.
func Fuse(symbol string, votes []models.SignalVote, at time.Time) models.FusedSignal {
	score := 0
	for _, vote := range votes {
		switch {
		case vote.Direction.IsBuy():
			score++
		case vote.Direction.IsSell():
			score--
		}
	}

	direction := models.DirectionHold
	switch {
	case score >= 2:
		direction = models.DirectionStrongBuy
	case score == 1:
		direction = models.DirectionBuy
	case score <= -2:
		direction = models.DirectionStrongSell
	case score == -1:
		direction = models.DirectionSell
	}

	confidence := 0.0
	if len(votes) > 0 {
		confidence = absInt(score) / float64(len(votes)) * 100
	}

	return models.FusedSignal{
		ID:         uuid.New(),
		Symbol:     symbol,
		Direction:  direction,
		Confidence: confidence,
		Votes:      votes,
		Timestamp:  at,
	}
}

// VotesAt derives the per-indicator votes for one bar of a computed
// indicator set. Undefined indicator values vote HOLD so a warming-up series
// degrades to a neutral signal instead of an error.
func VotesAt(set *indicator.Set, cfg indicator.Config, i int) []models.SignalVote {
	votes := make([]models.SignalVote, 0, 3)

	rsiVote := models.DirectionHold
	if rsi := set.RSI[i]; rsi.Defined {
		switch {
		case rsi.V < cfg.RSIOversold:
			rsiVote = models.DirectionBuy
		case rsi.V > cfg.RSIOverbought:
			rsiVote = models.DirectionSell
		}
	}
	votes = append(votes, models.SignalVote{Source: SourceRSI, Direction: rsiVote, Weight: 1})

	stVote := models.DirectionHold
	if st := set.Supertrend[i]; st.Defined {
		if st.Direction == indicator.TrendUp {
			stVote = models.DirectionBuy
		} else {
			stVote = models.DirectionSell
		}
	}
	votes = append(votes, models.SignalVote{Source: SourceSupertrend, Direction: stVote, Weight: 1})

	macdVote := models.DirectionHold
	if macd := set.MACD[i]; macd.Defined {
		switch macd.Crossover {
		case indicator.CrossoverBuy:
			macdVote = models.DirectionBuy
		case indicator.CrossoverSell:
			macdVote = models.DirectionSell
		}
	}
	votes = append(votes, models.SignalVote{Source: SourceMACD, Direction: macdVote, Weight: 1})

	return votes
}

// Evaluate computes the fused signal for the latest bar of a series.
func Evaluate(symbol string, series models.PriceSeries, cfg indicator.Config) (models.FusedSignal, error) {
	set, err := indicator.Compute(series, cfg)
	if err != nil {
		return models.FusedSignal{}, err
	}
	last, ok := series.Last()
	if !ok {
		return Fuse(symbol, nil, time.Time{}), nil
	}
	votes := VotesAt(set, cfg, len(series)-1)
	return Fuse(symbol, votes, last.Timestamp), nil
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
