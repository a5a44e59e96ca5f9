// Package service provides watchlist evaluation functionality.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-desk/internal/config"
	"github.com/yourusername/signal-desk/internal/indicator"
	"github.com/yourusername/signal-desk/internal/logger"
	"github.com/yourusername/signal-desk/internal/marketdata"
	"github.com/yourusername/signal-desk/internal/metrics"
	"github.com/yourusername/signal-desk/internal/models"
	"github.com/yourusername/signal-desk/internal/repository"
	"github.com/yourusername/signal-desk/internal/signal"
)

// EvaluatorService fetches history for each watchlist symbol and produces
// fused signals from the indicator engine.
type EvaluatorService struct {
	source     marketdata.Source
	signalRepo repository.SignalRepository
	cfg        *config.Config
	indicators indicator.Config
	logger     *logrus.Logger
	signalLog  *logger.SignalLogger
	auditLog   *logger.AuditLogger
}

// NewEvaluatorService creates a new evaluator service. signalRepo may be nil
// when persistence is disabled.
func NewEvaluatorService(
	source marketdata.Source,
	signalRepo repository.SignalRepository,
	cfg *config.Config,
	log *logrus.Logger,
) *EvaluatorService {
	return &EvaluatorService{
		source:     source,
		signalRepo: signalRepo,
		cfg:        cfg,
		indicators: cfg.Indicators.ToIndicatorConfig(),
		logger:     log,
		signalLog:  logger.NewSignalLogger(log),
		auditLog:   logger.NewAuditLogger(log),
	}
}

// minWarmupBars is the history needed before the slowest indicator defines.
// MACD needs slow+signal-1 bars; the others warm up sooner.
func (s *EvaluatorService) minWarmupBars() int {
	macd := s.indicators.MACDSlow + s.indicators.MACDSignal - 1
	if rsi := s.indicators.RSIPeriod + 1; rsi > macd {
		return rsi
	}
	return macd
}

// EvaluateSymbol fetches history for one symbol and fuses a signal from it
func (s *EvaluatorService) EvaluateSymbol(ctx context.Context, symbol string) (*models.FusedSignal, error) {
	start := time.Now()

	fetchStart := time.Now()
	series, err := s.source.FetchBars(ctx, symbol, s.cfg.MarketData.Interval, s.cfg.Dashboard.HistoryBars)
	fetchLatency := time.Since(fetchStart).Seconds()
	if err != nil {
		metrics.RecordMarketDataFetch(s.source.Name(), "failure", fetchLatency)
		s.signalLog.LogFetchFailure(symbol, s.source.Name(), err.Error())
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	metrics.RecordMarketDataFetch(s.source.Name(), "success", fetchLatency)

	if required := s.minWarmupBars(); len(series) < required {
		s.signalLog.LogInsufficientHistory(symbol, len(series), required)
		return nil, fmt.Errorf("insufficient history for %s: %d bars, need %d", symbol, len(series), required)
	}

	fused, err := signal.Evaluate(symbol, series, s.indicators)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s: %w", symbol, err)
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	buys, sells := countVotes(fused.Votes)
	s.signalLog.LogEvaluation(symbol, string(fused.Direction), fused.Confidence, buys, sells, len(series), durationMs)

	metrics.RecordSignalEvaluation(time.Since(start).Seconds())
	metrics.RecordSignalDirection(symbol, string(fused.Direction))
	metrics.UpdateLastSignalConfidence(symbol, string(fused.Direction), fused.Confidence)

	if s.cfg.Features.AlertsEnabled && s.shouldAlert(fused) {
		s.signalLog.LogAlert(symbol, string(fused.Direction), fused.Confidence, s.cfg.Dashboard.MinAlertConfidence)
		metrics.RecordSignalAlert()
	}

	if s.cfg.Features.PersistenceEnabled && s.signalRepo != nil {
		if err := s.signalRepo.Save(ctx, &fused); err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Error("Failed to persist signal")
		} else {
			s.auditLog.LogSignalPersisted(fused.ID.String(), symbol, string(fused.Direction), fused.Confidence, fused.Timestamp)
		}
	}

	return &fused, nil
}

// EvaluateWatchlist evaluates every symbol on the configured watchlist.
// A failure on one symbol does not stop the rest.
func (s *EvaluatorService) EvaluateWatchlist(ctx context.Context) ([]*models.FusedSignal, error) {
	watchlist := s.cfg.Dashboard.Watchlist
	metrics.UpdateWatchlistSize(float64(len(watchlist)))

	signals := make([]*models.FusedSignal, 0, len(watchlist))
	var firstErr error

	for _, symbol := range watchlist {
		if ctx.Err() != nil {
			return signals, ctx.Err()
		}

		fused, err := s.EvaluateSymbol(ctx, symbol)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Error("Watchlist evaluation failed for symbol")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		signals = append(signals, fused)
	}

	if len(signals) == 0 && firstErr != nil {
		return nil, fmt.Errorf("watchlist evaluation produced no signals: %w", firstErr)
	}
	return signals, nil
}

// shouldAlert reports whether a fused signal clears the alert bar. HOLD never
// alerts regardless of confidence.
func (s *EvaluatorService) shouldAlert(fused models.FusedSignal) bool {
	if fused.Direction == models.DirectionHold {
		return false
	}
	return fused.Confidence >= s.cfg.Dashboard.MinAlertConfidence
}

func countVotes(votes []models.SignalVote) (buys, sells int) {
	for _, vote := range votes {
		if vote.Direction.IsBuy() {
			buys++
		}
		if vote.Direction.IsSell() {
			sells++
		}
	}
	return buys, sells
}
