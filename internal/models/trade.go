package models

import (
	"time"

	"github.com/google/uuid"
)

// PositionSide identifies the direction of an open position.
type PositionSide string

// Position sides
const (
	PositionLong  PositionSide = "LONG"
	PositionShort PositionSide = "SHORT"
)

// Position is an open simulated position inside a backtest run. At most one
// position is open at a time; it is closed by an opposing signal or by the
// forced liquidation at the end of the series.
type Position struct {
	Side       PositionSide `json:"side"`
	EntryPrice float64      `json:"entry_price"`
	EntryAt    time.Time    `json:"entry_at"`
	EntryIndex int          `json:"entry_index"`
	Quantity   int64        `json:"quantity"`
}

// Trade is a closed round trip. Entry and exit prices are post-slippage;
// commission has already been subtracted from PnL. Trades are immutable once
// appended to the ledger.
type Trade struct {
	ID           uuid.UUID    `json:"id"`
	Symbol       string       `json:"symbol"`
	Side         PositionSide `json:"side"`
	EntryAt      time.Time    `json:"entry_at"`
	ExitAt       time.Time    `json:"exit_at"`
	EntryPrice   float64      `json:"entry_price"`
	ExitPrice    float64      `json:"exit_price"`
	Quantity     int64        `json:"quantity"`
	Commission   float64      `json:"commission"`
	PnL          float64      `json:"pnl"`
	PnLPct       float64      `json:"pnl_pct"`
	DurationBars int          `json:"duration_bars"`
}

// TradeLedger is the ordered record of closed trades, ordered by entry time
// and non-overlapping by construction.
type TradeLedger []Trade

// NetPnL sums realized profit and loss across the ledger.
func (l TradeLedger) NetPnL() float64 {
	net := 0.0
	for _, trade := range l {
		net += trade.PnL
	}
	return net
}
