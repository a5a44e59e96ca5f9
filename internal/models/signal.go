package models

import (
	"time"

	"github.com/google/uuid"
)

// Direction is the discrete trading decision attached to a vote or a fused
// signal. The STRONG variants only appear on fused signals, never on
// individual indicator votes.
type Direction string

// Direction values
const (
	DirectionStrongBuy  Direction = "STRONG_BUY"
	DirectionBuy        Direction = "BUY"
	DirectionHold       Direction = "HOLD"
	DirectionSell       Direction = "SELL"
	DirectionStrongSell Direction = "STRONG_SELL"
)

// IsBuy reports whether the direction is a buy of either strength.
func (d Direction) IsBuy() bool {
	return d == DirectionBuy || d == DirectionStrongBuy
}

// IsSell reports whether the direction is a sell of either strength.
func (d Direction) IsSell() bool {
	return d == DirectionSell || d == DirectionStrongSell
}

// SignalVote is a single indicator's contribution to a fused signal.
type SignalVote struct {
	Source    string    `json:"source"`
	Direction Direction `json:"direction"`
	Weight    float64   `json:"weight,omitempty"`
}

// FusedSignal is the aggregate decision produced by signal fusion. It is
// created fresh per evaluation and never mutated; confidence is a percentage
// in [0,100] that grows with the number of agreeing votes.
type FusedSignal struct {
	ID         uuid.UUID    `json:"id"`
	Symbol     string       `json:"symbol"`
	Direction  Direction    `json:"direction"`
	Confidence float64      `json:"confidence"`
	Votes      []SignalVote `json:"votes"`
	Timestamp  time.Time    `json:"timestamp"`
}
