package analytics

import (
	"math"
	"time"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// TradingWeekdays are the weekday keys always present in ReturnsByWeekday
var TradingWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// WeekdayReturn is the mean daily return for one weekday
type WeekdayReturn struct {
	Day          time.Weekday `json:"-"`
	Name         string       `json:"day"`
	Average      float64      `json:"average"`
	Observations int          `json:"observations"`
}

// SymbolScore pairs a symbol with a scalar aggregate
type SymbolScore struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

// DailyReturns returns 100*(close[t]-close[t-1])/close[t-1]. Index 0, and any
// bar following a zero close, is missing.
func DailyReturns(closes []float64) models.Values {
	out := make(models.Values, len(closes))
	for t := 1; t < len(closes); t++ {
		prev := closes[t-1]
		if prev == 0 {
			continue
		}
		out[t] = models.NewValue(100 * (closes[t] - prev) / prev)
	}
	return out
}

// ReturnsByWeekday averages the daily returns of series per weekday.
// Monday to Friday are always present (0 when unobserved); weekends are dropped.
func ReturnsByWeekday(series models.Series) []WeekdayReturn {
	returns := DailyReturns(series.Closes())

	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for i, r := range returns {
		if !r.Valid {
			continue
		}
		day := series.Bars[i].Date.Weekday()
		sums[day] += r.Float
		counts[day]++
	}

	out := make([]WeekdayReturn, 0, len(TradingWeekdays))
	for _, day := range TradingWeekdays {
		wr := WeekdayReturn{Day: day, Name: day.String(), Observations: counts[day]}
		if counts[day] > 0 {
			wr.Average = sums[day] / float64(counts[day])
		}
		out = append(out, wr)
	}
	return out
}

// Volatility returns the sample standard deviation of each symbol's daily
// returns over its entire history. Fewer than two returns yields 0.
func Volatility(ds *models.Dataset) []SymbolScore {
	symbols, bySymbol := SplitBySymbol(ds)
	out := make([]SymbolScore, 0, len(symbols))
	for _, symbol := range symbols {
		returns := DailyReturns(bySymbol[symbol].Closes()).Floats()
		out = append(out, SymbolScore{Symbol: symbol, Value: SampleStdDev(returns)})
	}
	return out
}

// StrengthScores averages close/SMA(window) over each symbol's entire history.
// Symbols without a single valid ratio score a neutral 1.
func StrengthScores(ds *models.Dataset, window int) []SymbolScore {
	symbols, bySymbol := SplitBySymbol(ds)
	out := make([]SymbolScore, 0, len(symbols))
	for _, symbol := range symbols {
		out = append(out, SymbolScore{Symbol: symbol, Value: strengthScore(bySymbol[symbol], window)})
	}
	return out
}

func strengthScore(series models.Series, window int) float64 {
	closes := series.Closes()
	sma := SMA(closes, window)

	sum, n := 0.0, 0
	for i, avg := range sma {
		if !avg.Valid || avg.Float == 0 {
			continue
		}
		sum += closes[i] / avg.Float
		n++
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}

// SampleStdDev is the n-1 standard deviation; 0 for fewer than two values.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// Mean returns the arithmetic mean; 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
