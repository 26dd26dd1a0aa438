package analytics

import (
	"fmt"
	"time"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// Summary condenses a selected series into headline numbers
type Summary struct {
	Symbol       string       `json:"symbol"`
	Start        time.Time    `json:"start"`
	End          time.Time    `json:"end"`
	Bars         int          `json:"bars"`
	AvgClose     float64      `json:"avg_close"`
	HighestPrice float64      `json:"highest_price"`
	LowestPrice  float64      `json:"lowest_price"`
	AvgReturn    models.Value `json:"avg_return"`
}

// PriceHistory is the OHLC columns of a series
type PriceHistory struct {
	Dates []time.Time `json:"dates"`
	Open  []float64   `json:"open"`
	High  []float64   `json:"high"`
	Low   []float64   `json:"low"`
	Close []float64   `json:"close"`
}

// Summarize computes the averages and extremes of series
func Summarize(series models.Series) (Summary, error) {
	if series.Empty() {
		return Summary{}, fmt.Errorf("%w: %s", ErrNoData, series.Symbol)
	}

	s := Summary{
		Symbol:       series.Symbol,
		Start:        series.Bars[0].Date,
		End:          series.Bars[len(series.Bars)-1].Date,
		Bars:         series.Len(),
		AvgClose:     Mean(series.Closes()),
		HighestPrice: series.Bars[0].High,
		LowestPrice:  series.Bars[0].Low,
	}
	for _, bar := range series.Bars[1:] {
		if bar.High > s.HighestPrice {
			s.HighestPrice = bar.High
		}
		if bar.Low < s.LowestPrice {
			s.LowestPrice = bar.Low
		}
	}

	if returns := DailyReturns(series.Closes()).Floats(); len(returns) > 0 {
		s.AvgReturn = models.NewValue(Mean(returns))
	}
	return s, nil
}

// History extracts the OHLC columns of series
func History(series models.Series) PriceHistory {
	h := PriceHistory{
		Dates: series.Dates(),
		Open:  make([]float64, series.Len()),
		High:  make([]float64, series.Len()),
		Low:   make([]float64, series.Len()),
		Close: series.Closes(),
	}
	for i, bar := range series.Bars {
		h.Open[i] = bar.Open
		h.High[i] = bar.High
		h.Low[i] = bar.Low
	}
	return h
}
