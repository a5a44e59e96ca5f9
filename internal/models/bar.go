package models

import (
	"fmt"
	"time"
)

// Bar represents a single OHLCV record. Bars are immutable once produced;
// the engines only ever read them.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// PriceSeries is a time-ordered sequence of bars with strictly increasing
// timestamps. Gaps are allowed, duplicate timestamps are not.
type PriceSeries []Bar

// Validate checks the ordering invariant. An empty series is valid; the
// indicator engines handle short input by emitting undefined values.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Timestamp.After(s[i-1].Timestamp) {
			return fmt.Errorf("bar %d at %s: %w", i, s[i].Timestamp.Format(time.RFC3339), ErrUnorderedSeries)
		}
	}
	return nil
}

// Closes returns the close prices as a flat slice.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Last returns the most recent bar, or false when the series is empty.
func (s PriceSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Span returns the wall-clock distance between the first and last bar.
func (s PriceSeries) Span() time.Duration {
	if len(s) < 2 {
		return 0
	}
	return s[len(s)-1].Timestamp.Sub(s[0].Timestamp)
}
