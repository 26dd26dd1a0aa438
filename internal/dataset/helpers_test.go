package dataset

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/irfndi/stockpulse-go/internal/logging"
	"github.com/irfndi/stockpulse-go/internal/models"
)

func quietLogger() *logging.StandardLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logging.Wrap(l)
}

func sampleDataset(source string) *models.Dataset {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return &models.Dataset{
		Source:   source,
		LoadedAt: day(10),
		Rows: []models.PriceBar{
			{Symbol: "AXISBANK.NS", Date: day(2), Open: 1000, High: 1010, Low: 990, Close: 1005, Volume: 100},
			{Symbol: "AXISBANK.NS", Date: day(3), Open: 1005, High: 1020, Low: 1000, Close: 1015, Volume: 120},
			{Symbol: "ITC.NS", Date: day(2), Open: 450, High: 455, Low: 445, Close: 452, Volume: 900},
		},
	}
}

// stubLoader counts loads and optionally blocks until release is closed.
// Each returned dataset has LoadedAt shifted by its call number in hours.
type stubLoader struct {
	calls   atomic.Int32
	err     error
	release chan struct{}
}

func (s *stubLoader) Source() string { return "stub" }

func (s *stubLoader) Load(ctx context.Context) (*models.Dataset, error) {
	n := s.calls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	ds := sampleDataset("stub")
	ds.LoadedAt = ds.LoadedAt.Add(time.Duration(n) * time.Hour)
	return ds, nil
}

// failingCache always errors
type failingCache struct{}

func (failingCache) Get(context.Context, string) (*models.Dataset, bool, error) {
	return nil, false, errors.New("redis down")
}

func (failingCache) Set(context.Context, *models.Dataset) error {
	return errors.New("redis down")
}

func (failingCache) Delete(context.Context, string) error {
	return errors.New("redis down")
}
