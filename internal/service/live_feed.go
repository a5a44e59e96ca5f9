package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-desk/internal/config"
	"github.com/yourusername/signal-desk/internal/marketdata"
	"github.com/yourusername/signal-desk/internal/models"
)

// LiveFeedService consumes the live candle stream and re-evaluates a symbol
// whenever a completed bar arrives.
type LiveFeedService struct {
	stream    *marketdata.StreamClient
	cache     *marketdata.SeriesCache
	evaluator *EvaluatorService
	cfg       *config.Config
	logger    *logrus.Logger
}

// NewLiveFeedService creates a new live feed service. cache may be nil when
// the REST source is not cached.
func NewLiveFeedService(
	stream *marketdata.StreamClient,
	cache *marketdata.SeriesCache,
	evaluator *EvaluatorService,
	cfg *config.Config,
	log *logrus.Logger,
) *LiveFeedService {
	return &LiveFeedService{
		stream:    stream,
		cache:     cache,
		evaluator: evaluator,
		cfg:       cfg,
		logger:    log,
	}
}

// Start connects the stream and subscribes to the watchlist
func (l *LiveFeedService) Start(ctx context.Context) error {
	l.stream.AddHandler(l.onBar)

	if err := l.stream.ConnectWithRetry(ctx); err != nil {
		return fmt.Errorf("failed to start live feed: %w", err)
	}

	if err := l.stream.Subscribe(ctx, l.cfg.Dashboard.Watchlist, l.cfg.MarketData.Interval); err != nil {
		return fmt.Errorf("failed to subscribe live feed: %w", err)
	}

	l.logger.WithField("symbols", len(l.cfg.Dashboard.Watchlist)).Info("Live feed started")
	return nil
}

// Stop closes the stream connection
func (l *LiveFeedService) Stop() error {
	return l.stream.Close()
}

// onBar handles one completed candle from the stream. The cached history for
// the symbol is stale once a new bar closes, so it is dropped before the
// symbol is re-evaluated against fresh history.
func (l *LiveFeedService) onBar(symbol string, bar models.Bar) error {
	if l.cache != nil {
		l.cache.Invalidate(symbol)
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.MarketData.RequestTimeout())
	defer cancel()

	if _, err := l.evaluator.EvaluateSymbol(ctx, symbol); err != nil {
		l.logger.WithError(err).WithField("symbol", symbol).Warn("Live re-evaluation failed")
		return err
	}

	l.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"close":  bar.Close,
	}).Debug("Live bar processed")
	return nil
}
