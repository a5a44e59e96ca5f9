package backtest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// EquityPoint is one sample of account value, taken at the start of the run
// and after every closed trade. Drawdown is the percentage decline from the
// running peak at the time of the sample.
type EquityPoint struct {
	Time     time.Time `json:"time"`
	Value    float64   `json:"value"`
	Drawdown float64   `json:"drawdown"`
}

// EquityCurve is the ordered account-value trajectory of a run.
type EquityCurve []EquityPoint

// Values flattens the curve to account values.
func (e EquityCurve) Values() []float64 {
	values := make([]float64, len(e))
	for i, p := range e {
		values[i] = p.Value
	}
	return values
}

// Drawdowns flattens the curve to percentage-from-peak values.
func (e EquityCurve) Drawdowns() []float64 {
	drawdowns := make([]float64, len(e))
	for i, p := range e {
		drawdowns[i] = p.Drawdown
	}
	return drawdowns
}

// Returns calculates point-to-point fractional returns.
func (e EquityCurve) Returns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (e[i].Value-prev)/prev)
	}
	return returns
}

// ToCSV exports the curve as CSV.
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("time,value,drawdown\n")
	for _, point := range e {
		buf.WriteString(point.Time.Format(time.RFC3339))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Value))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Drawdown))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the curve as JSON.
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
