package backtest

import (
	"time"

	"github.com/yourusername/signal-desk/internal/models"
)

// State tracks the running account through a backtest: current and peak
// capital, the single open position, and the realized trade ledger. Each run
// gets its own State; the engine never shares one across runs.
type State struct {
	CurrentCapital float64
	PeakCapital    float64
	Position       *models.Position
	Trades         models.TradeLedger
	EquityCurve    EquityCurve
}

// NewState initializes backtest state with the starting capital as the first
// equity point.
func NewState(initialCapital float64, start time.Time) *State {
	state := &State{
		CurrentCapital: initialCapital,
		PeakCapital:    initialCapital,
		Trades:         models.TradeLedger{},
		EquityCurve:    EquityCurve{},
	}
	state.RecordEquityPoint(start, initialCapital)
	return state
}

// RecordTrade applies a closed trade to the account and appends an equity
// point, keeping the curve at exactly one point per trade plus the start.
func (s *State) RecordTrade(trade models.Trade) {
	s.CurrentCapital += trade.PnL
	if s.CurrentCapital > s.PeakCapital {
		s.PeakCapital = s.CurrentCapital
	}
	s.Trades = append(s.Trades, trade)
	s.RecordEquityPoint(trade.ExitAt, s.CurrentCapital)
}

// RecordEquityPoint adds an equity point to the curve.
func (s *State) RecordEquityPoint(t time.Time, value float64) {
	drawdown := 0.0
	if value < s.PeakCapital && s.PeakCapital > 0 {
		drawdown = (s.PeakCapital - value) / s.PeakCapital * 100
	}
	s.EquityCurve = append(s.EquityCurve, EquityPoint{
		Time:     t,
		Value:    value,
		Drawdown: drawdown,
	})
}

// CurrentDrawdown reports the percentage decline from the peak capital.
func (s *State) CurrentDrawdown() float64 {
	if s.PeakCapital == 0 {
		return 0
	}
	drawdown := (s.PeakCapital - s.CurrentCapital) / s.PeakCapital * 100
	if drawdown < 0 {
		return 0
	}
	return drawdown
}
