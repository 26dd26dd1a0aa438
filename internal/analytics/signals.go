package analytics

import (
	"time"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// SignalKind identifies the direction of a crossover
type SignalKind string

const (
	SignalBuy  SignalKind = "buy"
	SignalSell SignalKind = "sell"
)

// SignalEvent is a single crossover at a date
type SignalEvent struct {
	Date time.Time  `json:"date"`
	Kind SignalKind `json:"kind"`
}

// Crossovers holds one buy flag and one sell flag per bar
type Crossovers struct {
	Buy  []bool `json:"buy"`
	Sell []bool `json:"sell"`
}

// DetectCrossovers flags MACD crossing above (buy) or below (sell) the signal
// line. Index 0 never fires and the two flags are never both set.
func DetectCrossovers(macd, signal []float64) Crossovers {
	n := len(macd)
	if len(signal) < n {
		n = len(signal)
	}
	c := Crossovers{
		Buy:  make([]bool, n),
		Sell: make([]bool, n),
	}
	for t := 1; t < n; t++ {
		c.Buy[t] = macd[t] > signal[t] && macd[t-1] <= signal[t-1]
		c.Sell[t] = macd[t] < signal[t] && macd[t-1] >= signal[t-1]
	}
	return c
}

// Events converts the dense flags into a sparse event list for dates
func (c Crossovers) Events(dates []time.Time) []SignalEvent {
	events := make([]SignalEvent, 0)
	for t := range c.Buy {
		if t >= len(dates) {
			break
		}
		switch {
		case c.Buy[t]:
			events = append(events, SignalEvent{Date: dates[t], Kind: SignalBuy})
		case c.Sell[t]:
			events = append(events, SignalEvent{Date: dates[t], Kind: SignalSell})
		}
	}
	return events
}

// SignalFrame is the per-date output of the MACD crossover backtest
type SignalFrame struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates"`
	Crossovers
}

// BacktestSignals computes MACD crossovers over series
func BacktestSignals(series models.Series, cfg IndicatorConfig) SignalFrame {
	macd, signal := MACD(series.Closes(), cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	return SignalFrame{
		Symbol:     series.Symbol,
		Dates:      series.Dates(),
		Crossovers: DetectCrossovers(macd, signal),
	}
}
