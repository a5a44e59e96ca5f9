// Package metrics defines signal-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Signal-specific counter vectors
var (
	SignalDirectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signal_desk",
		Name:      "signal_directions_total",
		Help:      "Total number of fused signals by symbol and direction",
	}, []string{"symbol", "direction"})
)

// RecordSignalDirection records the direction of a fused signal.
func RecordSignalDirection(symbol, direction string) {
	SignalDirectionsTotal.WithLabelValues(symbol, direction).Inc()
}
