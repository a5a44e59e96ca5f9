package models

import (
	"time"

	"github.com/google/uuid"
)

// BacktestResult represents a persisted backtest run. The full trade ledger
// stays in the report export; only the headline figures go to the database.
type BacktestResult struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Symbol         string    `db:"symbol" json:"symbol"`
	Strategy       string    `db:"strategy" json:"strategy"`
	RunDate        time.Time `db:"run_date" json:"run_date"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	EndDate        time.Time `db:"end_date" json:"end_date"`
	InitialCapital float64   `db:"initial_capital" json:"initial_capital"`
	FinalCapital   float64   `db:"final_capital" json:"final_capital"`
	TotalReturn    float64   `db:"total_return" json:"total_return"`
	AnnualReturn   float64   `db:"annual_return" json:"annual_return"`
	SharpeRatio    float64   `db:"sharpe_ratio" json:"sharpe_ratio"`
	MaxDrawdown    float64   `db:"max_drawdown" json:"max_drawdown"`
	TotalTrades    int       `db:"total_trades" json:"total_trades"`
	WinRate        float64   `db:"win_rate" json:"win_rate"`
	ProfitFactor   float64   `db:"profit_factor" json:"profit_factor"`
	CompositeScore float64   `db:"composite_score" json:"composite_score"`
	Recommendation string    `db:"recommendation" json:"recommendation"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
