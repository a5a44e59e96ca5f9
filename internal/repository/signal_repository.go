package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/signal-desk/internal/database"
	"github.com/yourusername/signal-desk/internal/models"
)

const signalColumns = `id, symbol, direction, confidence, votes, created_at`

// PostgresSignalRepository implements SignalRepository for PostgreSQL
type PostgresSignalRepository struct {
	db *database.DB
}

// NewPostgresSignalRepository creates a new signal repository
func NewPostgresSignalRepository(db *database.DB) SignalRepository {
	return &PostgresSignalRepository{db: db}
}

// Save inserts a fused signal. Votes are stored as a jsonb document.
func (r *PostgresSignalRepository) Save(ctx context.Context, signal *models.FusedSignal) error {
	votes, err := json.Marshal(signal.Votes)
	if err != nil {
		return fmt.Errorf("failed to encode signal votes: %w", err)
	}

	query := `
		INSERT INTO signals (id, symbol, direction, confidence, votes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err = r.db.GetPool().Exec(ctx, query,
		signal.ID, signal.Symbol, string(signal.Direction), signal.Confidence, votes, signal.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save signal: %w", err)
	}
	return nil
}

// GetLatestBySymbol retrieves the most recent signals for a symbol
func (r *PostgresSignalRepository) GetLatestBySymbol(ctx context.Context, symbol string, limit int) ([]*models.FusedSignal, error) {
	query := `SELECT ` + signalColumns + `
		FROM signals WHERE symbol = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.GetPool().Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	return scanSignals(rows)
}

// GetByDateRange retrieves signals for a symbol within a time range
func (r *PostgresSignalRepository) GetByDateRange(ctx context.Context, symbol string, start, end time.Time) ([]*models.FusedSignal, error) {
	query := `SELECT ` + signalColumns + `
		FROM signals WHERE symbol = $1 AND created_at >= $2 AND created_at <= $3 ORDER BY created_at ASC`
	rows, err := r.db.GetPool().Query(ctx, query, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals by date range: %w", err)
	}
	defer rows.Close()

	return scanSignals(rows)
}

// DeleteOlderThan removes signals older than the cutoff, returning the count
func (r *PostgresSignalRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.GetPool().Exec(ctx, `DELETE FROM signals WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old signals: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSignals(rows pgx.Rows) ([]*models.FusedSignal, error) {
	var signals []*models.FusedSignal
	for rows.Next() {
		signal := &models.FusedSignal{}
		var direction string
		var votes []byte
		if err := rows.Scan(
			&signal.ID, &signal.Symbol, &direction, &signal.Confidence, &votes, &signal.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}
		signal.Direction = models.Direction(direction)
		if len(votes) > 0 {
			if err := json.Unmarshal(votes, &signal.Votes); err != nil {
				return nil, fmt.Errorf("failed to decode signal votes: %w", err)
			}
		}
		signals = append(signals, signal)
	}
	return signals, rows.Err()
}
