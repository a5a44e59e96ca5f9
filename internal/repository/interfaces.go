package repository

import (
	"context"
	"time"

	"github.com/yourusername/signal-desk/internal/models"
)

// SignalRepository defines the interface for fused signal data access
type SignalRepository interface {
	Save(ctx context.Context, signal *models.FusedSignal) error
	GetLatestBySymbol(ctx context.Context, symbol string, limit int) ([]*models.FusedSignal, error)
	GetByDateRange(ctx context.Context, symbol string, start, end time.Time) ([]*models.FusedSignal, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// BacktestResultRepository defines backtest result persistence
type BacktestResultRepository interface {
	SaveResult(ctx context.Context, result *models.BacktestResult) error
	GetBySymbol(ctx context.Context, symbol string) ([]*models.BacktestResult, error)
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestResult, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.BacktestResult, error)
	GetTopPerforming(ctx context.Context, limit int) ([]*models.BacktestResult, error)
}
