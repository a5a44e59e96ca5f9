package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordSignalEvaluation(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSignalEvaluation(0.05)
	})
}

func TestRecordSignalAlert(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSignalAlert()
	})
}

func TestRecordMarketDataFetch(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		source string
		status string
	}{
		{"successful fetch", "rest", "success"},
		{"failed fetch", "rest", "failure"},
		{"stream fetch", "stream", "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordMarketDataFetch(tt.source, tt.status, 0.12)
			})
		})
	}
}

func TestUpdateGauges(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateWatchlistSize(3)
		UpdateSeriesCacheHitRatio(0.85)
		UpdateLastSignalConfidence("BTC-USD", "STRONG_BUY", 66.7)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func TestSignalMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSignalDirection("BTC-USD", "BUY")
	})
}

func TestBacktestMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordBacktestRun("historical_replay", "success")
	})

	assert.NotPanics(t, func() {
		RecordCompositeScore("combined", "monte_carlo", 71.5)
	})

	assert.NotPanics(t, func() {
		UpdateAggregatedScore("combined", 71.5)
	})

	assert.NotPanics(t, func() {
		RecordBacktestDuration(1.2)
	})
}

func BenchmarkRecordSignalEvaluation(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordSignalEvaluation(0.05)
	}
}

func BenchmarkUpdateLastSignalConfidence(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		UpdateLastSignalConfidence("BTC-USD", "BUY", 33.3)
	}
}
