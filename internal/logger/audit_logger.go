// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogSignalPersisted logs a fused signal being written to storage.
func (al *AuditLogger) LogSignalPersisted(signalID, symbol, direction string, confidence float64, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"signal_id":  signalID,
		"symbol":     symbol,
		"direction":  direction,
		"confidence": confidence,
		"timestamp":  timestamp.Unix(),
	}).Info("Signal persisted")
}

// LogBacktestResultPersisted logs a backtest result being written to storage.
func (al *AuditLogger) LogBacktestResultPersisted(resultID, symbol, strategy string, totalTrades int, recommendation string) {
	al.WithFields(logrus.Fields{
		"result_id":      resultID,
		"symbol":         symbol,
		"strategy":       strategy,
		"total_trades":   totalTrades,
		"recommendation": recommendation,
	}).Info("Backtest result persisted")
}

// LogConfigChange logs an effective configuration value change.
func (al *AuditLogger) LogConfigChange(parameterName string, oldValue, newValue interface{}, changedBy string) {
	al.WithFields(logrus.Fields{
		"parameter_name": parameterName,
		"old_value":      oldValue,
		"new_value":      newValue,
		"changed_by":     changedBy,
	}).Info("Configuration changed")
}

// LogSchedulerEvent logs scheduler lifecycle events.
func (al *AuditLogger) LogSchedulerEvent(eventType, schedule string, watchlistSize int) {
	al.WithFields(logrus.Fields{
		"event_type":     eventType,
		"schedule":       schedule,
		"watchlist_size": watchlistSize,
	}).Info("Scheduler event recorded")
}

// LogShutdown logs a shutdown with the final system state.
func (al *AuditLogger) LogShutdown(reason string, systemState map[string]interface{}) {
	al.WithFields(logrus.Fields{
		"reason":       reason,
		"system_state": systemState,
	}).Warn("Shutdown initiated")
}
