// Package metrics provides the centralized Prometheus metrics registry for the dashboard.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SignalEvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_desk",
		Name:      "signal_evaluations_total",
		Help:      "Total number of watchlist signal evaluations",
	})
	SignalAlertsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_desk",
		Name:      "signal_alerts_total",
		Help:      "Total number of signal alerts raised",
	})
	MarketDataFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signal_desk",
		Name:      "market_data_fetches_total",
		Help:      "Total number of market data fetches by source and status",
	}, []string{"source", "status"})
	StreamReconnectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_desk",
		Name:      "stream_reconnects_total",
		Help:      "Total number of live stream reconnection attempts",
	})
)

// Gauge metrics
var (
	WatchlistSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_desk",
		Name:      "watchlist_size",
		Help:      "Number of symbols on the evaluation watchlist",
	})
	SeriesCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_desk",
		Name:      "series_cache_hit_ratio",
		Help:      "Hit ratio of the price series cache",
	})
	LastSignalConfidence = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signal_desk",
		Name:      "last_signal_confidence",
		Help:      "Confidence of the most recent fused signal per symbol",
	}, []string{"symbol", "direction"})
)

// Histogram metrics
var (
	SignalEvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "signal_desk",
		Name:      "signal_evaluation_duration_seconds",
		Help:      "Duration of watchlist signal evaluations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	MarketDataFetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "signal_desk",
		Name:      "market_data_fetch_latency_seconds",
		Help:      "Latency of market data fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "signal_desk",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(SignalEvaluationsTotal)
		registry.MustRegister(SignalAlertsTotal)
		registry.MustRegister(MarketDataFetchesTotal)
		registry.MustRegister(StreamReconnectsTotal)

		// Register gauge metrics
		registry.MustRegister(WatchlistSize)
		registry.MustRegister(SeriesCacheHitRatio)
		registry.MustRegister(LastSignalConfidence)

		// Register histogram metrics
		registry.MustRegister(SignalEvaluationDuration)
		registry.MustRegister(MarketDataFetchLatency)
		registry.MustRegister(BacktestDuration)

		// Register backtest metrics
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestCompositeScore)
		registry.MustRegister(BacktestAggregatedScore)
		registry.MustRegister(SignalDirectionsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSignalEvaluation records a signal evaluation event.
func RecordSignalEvaluation(durationSeconds float64) {
	SignalEvaluationsTotal.Inc()
	SignalEvaluationDuration.Observe(durationSeconds)
}

// RecordSignalAlert records a signal alert event.
func RecordSignalAlert() {
	SignalAlertsTotal.Inc()
}

// RecordMarketDataFetch records a market data fetch with its outcome.
func RecordMarketDataFetch(source, status string, latencySeconds float64) {
	MarketDataFetchesTotal.WithLabelValues(source, status).Inc()
	MarketDataFetchLatency.Observe(latencySeconds)
}

// RecordStreamReconnect records a stream reconnection attempt.
func RecordStreamReconnect() {
	StreamReconnectsTotal.Inc()
}

// UpdateWatchlistSize updates the watchlist size gauge.
func UpdateWatchlistSize(count float64) {
	WatchlistSize.Set(count)
}

// UpdateSeriesCacheHitRatio updates the series cache hit ratio gauge.
func UpdateSeriesCacheHitRatio(ratio float64) {
	SeriesCacheHitRatio.Set(ratio)
}

// UpdateLastSignalConfidence updates the per-symbol confidence gauge.
func UpdateLastSignalConfidence(symbol, direction string, confidence float64) {
	LastSignalConfidence.WithLabelValues(symbol, direction).Set(confidence)
}

// RecordBacktestDuration records backtest duration.
func RecordBacktestDuration(durationSeconds float64) {
	BacktestDuration.Observe(durationSeconds)
}
