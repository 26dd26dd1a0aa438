package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/irfndi/stockpulse-go/internal/database"
	"github.com/irfndi/stockpulse-go/internal/models"
)

const selectPriceBarsQuery = `SELECT symbol, trade_date, open, high, low, close, volume FROM price_bars ORDER BY symbol, trade_date`

// PostgresLoader reads the price table from the price_bars table
type PostgresLoader struct {
	pool database.DatabasePool
}

func NewPostgresLoader(pool database.DatabasePool) *PostgresLoader {
	return &PostgresLoader{pool: pool}
}

func (l *PostgresLoader) Source() string {
	return "postgres"
}

// Load queries every row of price_bars
func (l *PostgresLoader) Load(ctx context.Context) (*models.Dataset, error) {
	rows, err := l.pool.Query(ctx, selectPriceBarsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query price bars: %w", err)
	}
	defer rows.Close()

	bars := make([]models.PriceBar, 0)
	for rows.Next() {
		var bar models.PriceBar
		if err := rows.Scan(
			&bar.Symbol,
			&bar.Date,
			&bar.Open,
			&bar.High,
			&bar.Low,
			&bar.Close,
			&bar.Volume,
		); err != nil {
			return nil, fmt.Errorf("failed to scan price bar: %w", err)
		}
		bar.Date = models.CalendarDate(bar.Date)
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read price bars: %w", err)
	}

	return &models.Dataset{Rows: bars, LoadedAt: time.Now().UTC(), Source: l.Source()}, nil
}
