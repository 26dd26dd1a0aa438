// Package dataset loads the daily price table and hands it to the analytics
// engine as a read-only *models.Dataset.
package dataset

import (
	"context"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// Loader produces a complete price table from some backing store.
type Loader interface {
	// Load reads every row. Rows must be ordered by symbol then date.
	Load(ctx context.Context) (*models.Dataset, error)
	// Source names the backing store, e.g. "csv" or "postgres".
	Source() string
}
