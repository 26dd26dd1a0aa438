package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/irfndi/stockpulse-go/internal/logging"
)

// Refresher reloads the dataset on a cron schedule
type Refresher struct {
	cron     *cron.Cron
	provider *Provider
	logger   *logging.StandardLogger
	timeout  time.Duration
}

// NewRefresher schedules provider refreshes with a standard five-field cron spec
func NewRefresher(provider *Provider, spec string, logger *logging.StandardLogger) (*Refresher, error) {
	r := &Refresher{
		cron:     cron.New(),
		provider: provider,
		logger:   logger,
		timeout:  5 * time.Minute,
	}
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return r, nil
}

// Start begins the schedule in the background
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.WithComponent("refresher").Info("Dataset refresh schedule started")
}

// Stop halts the schedule and waits for a running refresh, bounded by ctx
func (r *Refresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		r.logger.WithComponent("refresher").Warn("Timed out waiting for dataset refresh to finish")
	}
}

// RunNow performs one refresh synchronously
func (r *Refresher) RunNow(ctx context.Context) error {
	ds, err := r.provider.Refresh(ctx)
	if err != nil {
		r.logger.WithComponent("refresher").WithError(err).Error("Dataset refresh failed")
		return err
	}
	r.logger.WithComponent("refresher").WithField("rows", ds.Len()).Info("Dataset refreshed")
	return nil
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	_ = r.RunNow(ctx)
}
