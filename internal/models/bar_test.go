package models

import (
	"errors"
	"testing"
	"time"
)

func testSeries(n int, step time.Duration) PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(PriceSeries, n)
	for i := range series {
		price := 100.0 + float64(i)
		series[i] = Bar{
			Timestamp: start.Add(time.Duration(i) * step),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1000,
		}
	}
	return series
}

func TestPriceSeriesValidate(t *testing.T) {
	series := testSeries(5, 24*time.Hour)
	if err := series.Validate(); err != nil {
		t.Fatalf("expected valid series, got %v", err)
	}

	// Duplicate timestamp must be rejected
	series[2].Timestamp = series[1].Timestamp
	err := series.Validate()
	if !errors.Is(err, ErrUnorderedSeries) {
		t.Fatalf("expected ErrUnorderedSeries, got %v", err)
	}
}

func TestPriceSeriesValidateEmpty(t *testing.T) {
	if err := (PriceSeries{}).Validate(); err != nil {
		t.Fatalf("empty series should be valid, got %v", err)
	}
}

func TestPriceSeriesHelpers(t *testing.T) {
	series := testSeries(3, time.Hour)

	closes := series.Closes()
	if len(closes) != 3 || closes[2] != 102 {
		t.Fatalf("unexpected closes: %v", closes)
	}

	last, ok := series.Last()
	if !ok || last.Close != 102 {
		t.Fatalf("unexpected last bar: %+v ok=%v", last, ok)
	}

	if span := series.Span(); span != 2*time.Hour {
		t.Fatalf("expected span 2h, got %s", span)
	}

	if _, ok := (PriceSeries{}).Last(); ok {
		t.Fatal("expected no last bar for empty series")
	}
}

func TestTradeLedgerNetPnL(t *testing.T) {
	ledger := TradeLedger{{PnL: 25}, {PnL: -10}, {PnL: 5}}
	if net := ledger.NetPnL(); net != 20 {
		t.Fatalf("expected net pnl 20, got %f", net)
	}
}
