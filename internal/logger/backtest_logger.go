// Package logger provides backtest-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for backtest runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRunStarted logs the start of a backtest run.
func (bl *BacktestLogger) LogRunStarted(symbol, strategy string, bars int, initialCapital float64) {
	bl.WithFields(logrus.Fields{
		"symbol":          symbol,
		"strategy":        strategy,
		"bars":            bars,
		"initial_capital": initialCapital,
	}).Info("Backtest run started")
}

// LogRunCompleted logs the outcome of a backtest run.
func (bl *BacktestLogger) LogRunCompleted(symbol, strategy string, totalTrades int, totalReturnPct, sharpeRatio, maxDrawdownPct, durationMs float64) {
	bl.WithFields(logrus.Fields{
		"symbol":           symbol,
		"strategy":         strategy,
		"total_trades":     totalTrades,
		"total_return_pct": totalReturnPct,
		"sharpe_ratio":     sharpeRatio,
		"max_drawdown_pct": maxDrawdownPct,
		"run_duration_ms":  durationMs,
	}).Info("Backtest run completed")
}

// LogMonteCarlo logs a Monte Carlo robustness pass.
func (bl *BacktestLogger) LogMonteCarlo(symbol, strategy string, iterations int, meanReturnPct, percentile5, percentile95 float64) {
	bl.WithFields(logrus.Fields{
		"symbol":          symbol,
		"strategy":        strategy,
		"iterations":      iterations,
		"mean_return_pct": meanReturnPct,
		"percentile_5":    percentile5,
		"percentile_95":   percentile95,
	}).Info("Monte Carlo validation completed")
}

// LogWalkForward logs a walk-forward validation pass.
func (bl *BacktestLogger) LogWalkForward(symbol, strategy string, windows int, consistencyScore float64) {
	bl.WithFields(logrus.Fields{
		"symbol":            symbol,
		"strategy":          strategy,
		"windows":           windows,
		"consistency_score": consistencyScore,
	}).Info("Walk-forward validation completed")
}

// LogAggregation logs the combined verdict across validation methods.
func (bl *BacktestLogger) LogAggregation(symbol, strategy string, compositeScore float64, recommendation string) {
	bl.WithFields(logrus.Fields{
		"symbol":          symbol,
		"strategy":        strategy,
		"composite_score": compositeScore,
		"recommendation":  recommendation,
	}).Info("Backtest results aggregated")
}
