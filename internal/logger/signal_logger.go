// Package logger provides signal-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SignalLogger provides dedicated logging for signal evaluation.
type SignalLogger struct {
	*logrus.Entry
}

// NewSignalLogger creates a new signal logger.
func NewSignalLogger(baseLogger *logrus.Logger) *SignalLogger {
	return &SignalLogger{
		Entry: baseLogger.WithField("component", "signal"),
	}
}

// LogEvaluation logs a completed watchlist evaluation for one symbol.
func (sl *SignalLogger) LogEvaluation(symbol, direction string, confidence float64, votesBuy, votesSell, barsUsed int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"symbol":                 symbol,
		"direction":              direction,
		"confidence":             confidence,
		"votes_buy":              votesBuy,
		"votes_sell":             votesSell,
		"bars_used":              barsUsed,
		"evaluation_duration_ms": durationMs,
	}).Info("Signal evaluation completed")
}

// LogAlert logs a signal whose confidence cleared the alert threshold.
func (sl *SignalLogger) LogAlert(symbol, direction string, confidence, threshold float64) {
	sl.WithFields(logrus.Fields{
		"symbol":     symbol,
		"direction":  direction,
		"confidence": confidence,
		"threshold":  threshold,
		"event_type": "alert",
	}).Warn("Signal alert raised")
}

// LogInsufficientHistory logs a symbol skipped for lack of warm-up bars.
func (sl *SignalLogger) LogInsufficientHistory(symbol string, barsAvailable, barsRequired int) {
	sl.WithFields(logrus.Fields{
		"symbol":         symbol,
		"bars_available": barsAvailable,
		"bars_required":  barsRequired,
	}).Warn("Insufficient history for signal evaluation")
}

// LogFetchFailure logs a market data fetch failure for a watchlist symbol.
func (sl *SignalLogger) LogFetchFailure(symbol, source string, errorReason string) {
	sl.WithFields(logrus.Fields{
		"symbol":       symbol,
		"source":       source,
		"error_reason": errorReason,
	}).Error("Market data fetch failed")
}
