package backtest

import (
	"encoding/json"
	"math"
)

// AggregatedResult combines the full-series report with the Monte Carlo and
// walk-forward validations into one scored verdict.
type AggregatedResult struct {
	Report            Report             `json:"report"`
	MonteCarloResult  MonteCarloResult   `json:"monte_carlo_result"`
	WalkForwardResult WalkForwardResult  `json:"walk_forward_result"`
	CompositeScore    float64            `json:"composite_score"`
	Weights           AggregationWeights `json:"weights"`
	Recommendation    string             `json:"recommendation"`
}

// AggregationWeights define the weighting per validation method.
type AggregationWeights struct {
	HistoricalReplay float64 `json:"historical_replay"`
	MonteCarlo       float64 `json:"monte_carlo"`
	WalkForward      float64 `json:"walk_forward"`
}

// DefaultWeights lean on the historical replay with the validations as
// tiebreakers.
func DefaultWeights() AggregationWeights {
	return AggregationWeights{HistoricalReplay: 0.5, MonteCarlo: 0.25, WalkForward: 0.25}
}

// AggregateResults scores the combined outcomes and attaches a
// recommendation.
func AggregateResults(report Report, monteCarlo MonteCarloResult, walkForward WalkForwardResult, weights AggregationWeights) AggregatedResult {
	historicalScore := CalculateCompositeScore(report)
	monteCarloScore := normalize(monteCarlo.MeanReturn, -0.5, 1.0)
	walkForwardScore := normalize(walkForward.MeanReturn, -50, 100)
	composite := historicalScore*weights.HistoricalReplay + monteCarloScore*weights.MonteCarlo + walkForwardScore*weights.WalkForward

	return AggregatedResult{
		Report:            report,
		MonteCarloResult:  monteCarlo,
		WalkForwardResult: walkForward,
		CompositeScore:    composite,
		Weights:           weights,
		Recommendation:    GenerateRecommendation(composite, walkForward.ConsistencyScore, report.TotalReturn, walkForward.MeanReturn),
	}
}

// CalculateCompositeScore maps a report onto [0,1]. Each input is clamped to
// a plausible range first, so an infinite profit factor simply saturates its
// term.
func CalculateCompositeScore(report Report) float64 {
	sharpeScore := normalize(report.SharpeRatio, -2, 3)
	returnScore := normalize(report.TotalReturn, -50, 100)
	profitFactorScore := normalize(report.ProfitFactor, 0, 3)
	drawdownPenalty := 1.0 - normalize(report.MaxDrawdown, 0, 50)
	winRateScore := normalize(report.WinRate, 0, 100)

	weighted := 0.0
	weighted += sharpeScore * 0.30
	weighted += returnScore * 0.20
	weighted += profitFactorScore * 0.20
	weighted += drawdownPenalty * 0.15
	weighted += winRateScore * 0.15
	return weighted
}

// GenerateRecommendation determines whether the strategy is acceptable.
func GenerateRecommendation(score, consistency, historicalReturn, walkForwardReturn float64) string {
	if score > 0.7 && historicalReturn > 0 && walkForwardReturn > 0 && consistency > 0.6 {
		return "ACCEPT"
	}
	if score < 0.4 || historicalReturn < 0 || walkForwardReturn < 0 || consistency < 0.4 {
		return "REJECT"
	}
	return "NEEDS_REVIEW"
}

// ToJSON exports the aggregated result.
func (a AggregatedResult) ToJSON() string {
	clone := a
	if math.IsInf(clone.Report.ProfitFactor, 1) {
		clone.Report.ProfitFactor = math.MaxFloat64
	}
	data, _ := json.Marshal(clone)
	return string(data)
}

func normalize(value, min, max float64) float64 {
	if max-min == 0 {
		return 0
	}
	v := (value - min) / (max - min)
	return math.Max(0, math.Min(1, v))
}
