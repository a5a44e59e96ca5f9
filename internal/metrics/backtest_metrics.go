// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signal_desk",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by method and status",
	}, []string{"method", "status"})
)

// Backtest histogram vectors
var (
	BacktestCompositeScore = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "signal_desk",
		Name:      "backtest_composite_score",
		Help:      "Composite scores from backtest runs by strategy and method",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	}, []string{"strategy", "method"})
)

// Backtest gauge vectors
var (
	BacktestAggregatedScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signal_desk",
		Name:      "backtest_aggregated_score",
		Help:      "Aggregated composite score for each strategy across all backtest methods",
	}, []string{"strategy"})
)

// RecordBacktestRun records a backtest run event.
// method should be one of: "historical_replay", "monte_carlo", "walk_forward"
// status should be one of: "success", "failure", "timeout"
func RecordBacktestRun(method, status string) {
	BacktestRunsTotal.WithLabelValues(method, status).Inc()
}

// RecordCompositeScore records a composite score from a backtest run.
func RecordCompositeScore(strategy, method string, score float64) {
	BacktestCompositeScore.WithLabelValues(strategy, method).Observe(score)
}

// UpdateAggregatedScore updates the aggregated composite score for a strategy.
func UpdateAggregatedScore(strategy string, score float64) {
	BacktestAggregatedScore.WithLabelValues(strategy).Set(score)
}
