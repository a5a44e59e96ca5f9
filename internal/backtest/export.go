package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/signal-desk/internal/models"
	"github.com/yourusername/signal-desk/internal/repository"
)

// RunExport is the full exportable payload of one aggregated run, including
// the trade ledger and equity curve the headline report omits.
type RunExport struct {
	Result      AggregatedResult   `json:"result"`
	Trades      models.TradeLedger `json:"trades"`
	EquityCurve EquityCurve        `json:"equity_curve"`
}

// ExportToJSON writes the run payload to a JSON file.
func ExportToJSON(export RunExport, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if math.IsInf(export.Result.Report.ProfitFactor, 1) {
		export.Result.Report.ProfitFactor = math.MaxFloat64
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// ExportToDatabase persists the headline figures of an aggregated run.
func ExportToDatabase(ctx context.Context, result AggregatedResult, repo repository.BacktestResultRepository) error {
	if repo == nil {
		return fmt.Errorf("backtest result repository is required")
	}
	now := time.Now().UTC()
	model := models.BacktestResult{
		ID:             uuid.New(),
		Symbol:         result.Report.Symbol,
		Strategy:       result.Report.Strategy,
		RunDate:        now,
		StartDate:      result.Report.StartDate,
		EndDate:        result.Report.EndDate,
		InitialCapital: result.Report.InitialCapital,
		FinalCapital:   result.Report.FinalCapital,
		TotalReturn:    result.Report.TotalReturn,
		AnnualReturn:   result.Report.AnnualReturn,
		SharpeRatio:    result.Report.SharpeRatio,
		MaxDrawdown:    result.Report.MaxDrawdown,
		TotalTrades:    result.Report.TotalTrades,
		WinRate:        result.Report.WinRate,
		ProfitFactor:   dbProfitFactor(result.Report.ProfitFactor),
		CompositeScore: result.CompositeScore,
		Recommendation: result.Recommendation,
		CreatedAt:      now,
	}
	return repo.SaveResult(ctx, &model)
}

// dbProfitFactor substitutes a large finite sentinel for an infinite profit
// factor; numeric columns cannot hold infinity.
func dbProfitFactor(pf float64) float64 {
	if math.IsInf(pf, 1) {
		return 999
	}
	return pf
}
