package backtest

import (
	"context"
	"testing"

	"github.com/yourusername/signal-desk/internal/strategy"
)

func TestRunWalkForward(t *testing.T) {
	combined, _ := strategy.New(strategy.NameCombined)
	engine, err := NewEngine(testConfig(), combined, quietLogger())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	result, err := RunWalkForward(context.Background(), engine, risingBars(120), WalkForwardConfig{
		Windows:          2,
		MinBarsPerWindow: 40,
	})
	if err != nil {
		t.Fatalf("RunWalkForward failed: %v", err)
	}
	if len(result.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(result.Windows))
	}
	// Each rising window carries a profitable forced-close long.
	if result.ConsistencyScore != 1 {
		t.Fatalf("expected full consistency, got %f", result.ConsistencyScore)
	}
	if result.MeanReturn <= 0 {
		t.Fatalf("expected positive mean return, got %f", result.MeanReturn)
	}
}

func TestRunWalkForwardShortSeriesCollapsesToOneWindow(t *testing.T) {
	combined, _ := strategy.New(strategy.NameCombined)
	engine, _ := NewEngine(testConfig(), combined, quietLogger())

	result, err := RunWalkForward(context.Background(), engine, risingBars(60), WalkForwardConfig{
		Windows:          4,
		MinBarsPerWindow: 40,
	})
	if err != nil {
		t.Fatalf("RunWalkForward failed: %v", err)
	}
	if len(result.Windows) != 1 {
		t.Fatalf("expected the split to collapse to one window, got %d", len(result.Windows))
	}
}
