package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerDefaultsToInfoOnBadLevel(t *testing.T) {
	log := NewLogger("not-a-level")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestSignalLoggerEvaluation(t *testing.T) {
	log, buf := setupTestLogger()
	signalLogger := NewSignalLogger(log)

	signalLogger.LogEvaluation("BTC-USD", "STRONG_BUY", 66.7, 2, 0, 200, 12.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "BTC-USD", logEntry["symbol"])
	assert.Equal(t, "STRONG_BUY", logEntry["direction"])
	assert.Equal(t, "signal", logEntry["component"])
}

func TestSignalLoggerAlert(t *testing.T) {
	log, buf := setupTestLogger()
	signalLogger := NewSignalLogger(log)

	signalLogger.LogAlert("ETH-USD", "SELL", 33.3, 30.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "alert", logEntry["event_type"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestSignalLoggerInsufficientHistory(t *testing.T) {
	log, buf := setupTestLogger()
	signalLogger := NewSignalLogger(log)

	signalLogger.LogInsufficientHistory("AAPL", 20, 34)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "AAPL", logEntry["symbol"])
	assert.Equal(t, float64(34), logEntry["bars_required"])
}

func TestBacktestLoggerRunCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogRunCompleted("BTC-USD", "combined", 14, 12.4, 1.1, 8.2, 250.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "combined", logEntry["strategy"])
	assert.Equal(t, float64(14), logEntry["total_trades"])
	assert.Equal(t, "backtest", logEntry["component"])
}

func TestBacktestLoggerMonteCarlo(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogMonteCarlo("BTC-USD", "combined", 1000, 10.2, -4.1, 25.3)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(1000), logEntry["iterations"])
}

func TestBacktestLoggerAggregation(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogAggregation("BTC-USD", "combined", 71.5, "ACCEPT")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "ACCEPT", logEntry["recommendation"])
}

func TestAuditLoggerSignalPersisted(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogSignalPersisted("sig_001", "BTC-USD", "BUY", 33.3, time.Now())

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "sig_001", logEntry["signal_id"])
	assert.Equal(t, "audit", logEntry["component"])
}

func TestAuditLoggerSchedulerEvent(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogSchedulerEvent("started", "*/5 * * * *", 3)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "started", logEntry["event_type"])
	assert.Equal(t, float64(3), logEntry["watchlist_size"])
}
