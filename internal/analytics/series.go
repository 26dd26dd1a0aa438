package analytics

import (
	"fmt"
	"time"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// Select returns the bars of symbol from the dataset. When both start and end
// are non-empty the result is further restricted to start <= date <= end.
// A malformed date yields an empty series together with ErrInvalidDateFormat;
// no partial filter is ever returned.
func Select(ds *models.Dataset, symbol, start, end string) (models.Series, error) {
	if start == "" || end == "" {
		return SelectAll(ds, symbol), nil
	}

	from, err := models.ParseDate(start)
	if err != nil {
		return models.Series{Symbol: symbol}, fmt.Errorf("%w: start_date %q", ErrInvalidDateFormat, start)
	}
	to, err := models.ParseDate(end)
	if err != nil {
		return models.Series{Symbol: symbol}, fmt.Errorf("%w: end_date %q", ErrInvalidDateFormat, end)
	}

	return selectWhere(ds, symbol, func(d time.Time) bool {
		return !d.Before(from) && !d.After(to)
	}), nil
}

// SelectAll returns the full, unrestricted history of symbol.
func SelectAll(ds *models.Dataset, symbol string) models.Series {
	return selectWhere(ds, symbol, nil)
}

// SelectFrom returns the bars of symbol dated on or after from.
func SelectFrom(ds *models.Dataset, symbol string, from time.Time) models.Series {
	return selectWhere(ds, symbol, func(d time.Time) bool {
		return !d.Before(from)
	})
}

// SplitBySymbol partitions the dataset into one series per symbol, keeping
// symbols in order of first appearance.
func SplitBySymbol(ds *models.Dataset) ([]string, map[string]models.Series) {
	symbols := ds.Symbols()
	bySymbol := make(map[string]models.Series, len(symbols))
	if ds == nil {
		return symbols, bySymbol
	}
	for _, row := range ds.Rows {
		s := bySymbol[row.Symbol]
		s.Symbol = row.Symbol
		s.Bars = append(s.Bars, row)
		bySymbol[row.Symbol] = s
	}
	return symbols, bySymbol
}

func selectWhere(ds *models.Dataset, symbol string, keep func(time.Time) bool) models.Series {
	series := models.Series{Symbol: symbol, Bars: []models.PriceBar{}}
	if ds == nil {
		return series
	}
	for _, row := range ds.Rows {
		if row.Symbol != symbol {
			continue
		}
		if keep != nil && !keep(row.Date) {
			continue
		}
		series.Bars = append(series.Bars, row)
	}
	return series
}
