package analytics

import (
	"sort"
	"time"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// DefaultHeatmapDays is the trailing calendar window of the momentum heatmap
const DefaultHeatmapDays = 30

// YearGrowth is the year x symbol table of mean daily return %.
// Cells is indexed [symbol][year]; absent combinations hold 0.
type YearGrowth struct {
	Years   []int       `json:"years"`
	Symbols []string    `json:"symbols"`
	Cells   [][]float64 `json:"cells"`
}

// Column returns the per-year values of symbol, or nil when unknown
func (g YearGrowth) Column(symbol string) []float64 {
	for i, s := range g.Symbols {
		if s == symbol {
			return g.Cells[i]
		}
	}
	return nil
}

// YearWiseGrowth groups each symbol's daily returns by calendar year.
// Years and symbols are sorted ascending.
func YearWiseGrowth(ds *models.Dataset) YearGrowth {
	symbols, bySymbol := SplitBySymbol(ds)
	sort.Strings(symbols)

	type cell struct {
		sum float64
		n   int
	}
	perSymbol := make(map[string]map[int]*cell, len(symbols))
	yearSet := make(map[int]struct{})

	for _, symbol := range symbols {
		series := bySymbol[symbol]
		returns := DailyReturns(series.Closes())
		cells := make(map[int]*cell)
		for i, bar := range series.Bars {
			year := bar.Date.Year()
			yearSet[year] = struct{}{}
			if !returns[i].Valid {
				continue
			}
			c, ok := cells[year]
			if !ok {
				c = &cell{}
				cells[year] = c
			}
			c.sum += returns[i].Float
			c.n++
		}
		perSymbol[symbol] = cells
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	out := YearGrowth{
		Years:   years,
		Symbols: symbols,
		Cells:   make([][]float64, len(symbols)),
	}
	for si, symbol := range symbols {
		row := make([]float64, len(years))
		for yi, year := range years {
			if c, ok := perSymbol[symbol][year]; ok && c.n > 0 {
				row[yi] = c.sum / float64(c.n)
			}
		}
		out.Cells[si] = row
	}
	return out
}

// Heatmap is a symbols x dates matrix of MACD state (1 when MACD is above
// its signal line, else 0).
type Heatmap struct {
	Symbols []string    `json:"symbols"`
	Dates   []time.Time `json:"dates"`
	Matrix  [][]int     `json:"matrix"`
}

// MomentumHeatmap builds the MACD-state matrix over the trailing `days`
// calendar days ending at the dataset's latest date. The date axis holds the
// earliest `days` distinct dates of that window. MACD and its signal line are
// computed per symbol over that symbol's own closes inside the window; dates
// a symbol lacks are 0.
func MomentumHeatmap(ds *models.Dataset, days int, cfg IndicatorConfig) Heatmap {
	symbols := ds.Symbols()
	out := Heatmap{
		Symbols: symbols,
		Dates:   []time.Time{},
		Matrix:  make([][]int, len(symbols)),
	}

	maxDate, ok := ds.MaxDate()
	if !ok || days <= 0 {
		for i := range out.Matrix {
			out.Matrix[i] = []int{}
		}
		return out
	}
	minDate := maxDate.AddDate(0, 0, -days)

	window := &models.Dataset{}
	dateSet := make(map[time.Time]struct{})
	for _, row := range ds.Rows {
		if row.Date.Before(minDate) {
			continue
		}
		window.Rows = append(window.Rows, row)
		dateSet[row.Date] = struct{}{}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) > days {
		dates = dates[:days]
	}
	out.Dates = dates

	_, bySymbol := SplitBySymbol(window)
	for i, symbol := range symbols {
		out.Matrix[i] = macdStateRow(bySymbol[symbol], dates, cfg)
	}
	return out
}

func macdStateRow(series models.Series, dates []time.Time, cfg IndicatorConfig) []int {
	row := make([]int, len(dates))
	if series.Empty() {
		return row
	}

	macd, signal := MACD(series.Closes(), cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	state := make(map[time.Time]int, len(macd))
	for i, bar := range series.Bars {
		if macd[i] > signal[i] {
			state[bar.Date] = 1
		} else {
			state[bar.Date] = 0
		}
	}
	for i, d := range dates {
		row[i] = state[d]
	}
	return row
}
