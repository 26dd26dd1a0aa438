package models

import (
	"time"
)

// DateLayout is the calendar-date format used for request parameters and JSON output.
const DateLayout = "2006-01-02"

// PriceBar represents one daily OHLCV record for a symbol
type PriceBar struct {
	Symbol string    `json:"symbol" db:"symbol"`
	Date   time.Time `json:"date" db:"trade_date"`
	Open   float64   `json:"open" db:"open"`
	High   float64   `json:"high" db:"high"`
	Low    float64   `json:"low" db:"low"`
	Close  float64   `json:"close" db:"close"`
	Volume int64     `json:"volume" db:"volume"`
}

// Series is the date-ordered price history of exactly one symbol.
// A Series is never mutated after construction; derived columns live in separate slices.
type Series struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

// Len returns the number of bars in the series
func (s Series) Len() int {
	return len(s.Bars)
}

// Empty reports whether the series holds no bars
func (s Series) Empty() bool {
	return len(s.Bars) == 0
}

// Closes returns a fresh slice with the close column
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the volume column as float64
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = float64(b.Volume)
	}
	return out
}

// Dates returns the date column
func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Date
	}
	return out
}

// DateStrings returns the date column formatted with DateLayout
func (s Series) DateStrings() []string {
	return FormatDates(s.Dates())
}

// Dataset is the full, ordered price table handed to the analytics engine.
// It is owned by the ingestion layer and must be treated as read-only.
type Dataset struct {
	Rows     []PriceBar `json:"rows"`
	LoadedAt time.Time  `json:"loaded_at"`
	Source   string     `json:"source"`
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Symbols returns the distinct symbols in order of first appearance
func (d *Dataset) Symbols() []string {
	if d == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	symbols := make([]string, 0)
	for _, row := range d.Rows {
		if _, ok := seen[row.Symbol]; ok {
			continue
		}
		seen[row.Symbol] = struct{}{}
		symbols = append(symbols, row.Symbol)
	}
	return symbols
}

// MaxDate returns the latest date in the dataset and false when it is empty
func (d *Dataset) MaxDate() (time.Time, bool) {
	if d.Len() == 0 {
		return time.Time{}, false
	}
	maxDate := d.Rows[0].Date
	for _, row := range d.Rows[1:] {
		if row.Date.After(maxDate) {
			maxDate = row.Date
		}
	}
	return maxDate, true
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// FormatDates formats dates with DateLayout
func FormatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(DateLayout)
	}
	return out
}

// CalendarDate truncates t to midnight UTC of its calendar day
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
