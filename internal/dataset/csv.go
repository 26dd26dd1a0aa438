package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/irfndi/stockpulse-go/internal/models"
)

var requiredColumns = []string{"date", "open", "high", "low", "close", "volume", "symbol"}

// Accepted date layouts. Exports from dataframe tooling often carry a midnight time part.
var csvDateLayouts = []string{models.DateLayout, "2006-01-02 15:04:05", time.RFC3339}

// CSVLoader reads the price table from a headered CSV file
type CSVLoader struct {
	path   string
	logger *logrus.Logger
}

// NewCSVLoader creates a loader for the file at path
func NewCSVLoader(path string, logger *logrus.Logger) *CSVLoader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CSVLoader{path: path, logger: logger}
}

func (l *CSVLoader) Source() string {
	return "csv"
}

// Load opens the file and parses it
func (l *CSVLoader) Load(ctx context.Context) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file: %w", err)
	}
	defer f.Close()

	rows, skipped, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", l.path, err)
	}
	if skipped > 0 {
		l.logger.WithFields(logrus.Fields{
			"path":    l.path,
			"skipped": skipped,
		}).Warn("Skipped malformed price rows")
	}

	return &models.Dataset{Rows: rows, LoadedAt: time.Now().UTC(), Source: l.Source()}, nil
}

// ParseCSV reads price rows from r. Columns are located by header name
// (case-insensitive); extra columns are ignored. Rows whose date or numeric
// fields cannot be parsed are skipped and counted. The result is ordered by
// symbol in first-appearance order, then by date.
func ParseCSV(r io.Reader) ([]models.PriceBar, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, errors.New("empty file")
	}
	if err != nil {
		return nil, 0, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, fmt.Errorf("missing column %q", col)
		}
	}

	rows := make([]models.PriceBar, 0)
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		bar, ok := parseRecord(record, index)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, bar)
	}

	sortRows(rows)
	return rows, skipped, nil
}

func parseRecord(record []string, index map[string]int) (models.PriceBar, bool) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	symbol := field("symbol")
	if symbol == "" {
		return models.PriceBar{}, false
	}
	date, ok := parseCSVDate(field("date"))
	if !ok {
		return models.PriceBar{}, false
	}

	var prices [4]float64
	for i, name := range []string{"open", "high", "low", "close"} {
		v, err := strconv.ParseFloat(field(name), 64)
		if err != nil {
			return models.PriceBar{}, false
		}
		prices[i] = v
	}
	// Volume may be written as a float ("12345.0")
	volume, err := strconv.ParseFloat(field("volume"), 64)
	if err != nil {
		return models.PriceBar{}, false
	}

	return models.PriceBar{
		Symbol: symbol,
		Date:   date,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: int64(volume),
	}, true
}

func parseCSVDate(value string) (time.Time, bool) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return models.CalendarDate(t), true
		}
	}
	return time.Time{}, false
}

// sortRows orders rows by symbol (first appearance) then date, keeping file order for ties
func sortRows(rows []models.PriceBar) {
	rank := make(map[string]int)
	for _, row := range rows {
		if _, ok := rank[row.Symbol]; !ok {
			rank[row.Symbol] = len(rank)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank[rows[i].Symbol], rank[rows[j].Symbol]
		if ri != rj {
			return ri < rj
		}
		return rows[i].Date.Before(rows[j].Date)
	})
}
