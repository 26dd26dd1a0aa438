package dataset

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/irfndi/stockpulse-go/internal/logging"
	"github.com/irfndi/stockpulse-go/internal/metrics"
	"github.com/irfndi/stockpulse-go/internal/models"
	"github.com/irfndi/stockpulse-go/internal/telemetry"
)

// DefaultLoadTimeout bounds one shared load
const DefaultLoadTimeout = 2 * time.Minute

// Provider is the process-wide handle to the loaded price table.
// The first Get loads it; later calls share the same read-only value until Invalidate.
type Provider struct {
	loader      Loader
	cache       SnapshotCache
	logger      *logging.StandardLogger
	metrics     *metrics.Metrics
	tracer      *telemetry.EngineTracer
	loadTimeout time.Duration

	mu         sync.RWMutex
	current    *models.Dataset
	generation uint64
	group      singleflight.Group
}

// ProviderOption configures optional collaborators
type ProviderOption func(*Provider)

// WithSnapshotCache makes the provider consult cache before the loader
func WithSnapshotCache(cache SnapshotCache) ProviderOption {
	return func(p *Provider) {
		p.cache = cache
	}
}

// WithMetrics records load metrics
func WithMetrics(m *metrics.Metrics) ProviderOption {
	return func(p *Provider) {
		p.metrics = m
	}
}

// WithLoadTimeout bounds each shared load independently of the callers waiting on it
func WithLoadTimeout(timeout time.Duration) ProviderOption {
	return func(p *Provider) {
		if timeout > 0 {
			p.loadTimeout = timeout
		}
	}
}

func NewProvider(loader Loader, logger *logging.StandardLogger, opts ...ProviderOption) *Provider {
	p := &Provider{
		loader:      loader,
		logger:      logger,
		tracer:      telemetry.NewEngineTracer(),
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Source names the underlying loader
func (p *Provider) Source() string {
	return p.loader.Source()
}

// Get returns the loaded dataset, loading it on first use.
// Callers waiting on the same generation share one load, which runs detached from
// any single caller's context; each caller still returns early when its own ctx ends.
func (p *Provider) Get(ctx context.Context) (*models.Dataset, error) {
	p.mu.RLock()
	ds, gen := p.current, p.generation
	p.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	key := "load-" + strconv.FormatUint(gen, 10)
	ch := p.group.DoChan(key, func() (interface{}, error) {
		p.mu.RLock()
		if p.current != nil && p.generation == gen {
			defer p.mu.RUnlock()
			return p.current, nil
		}
		p.mu.RUnlock()

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.loadTimeout)
		defer cancel()
		loaded, err := p.load(loadCtx)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		// An Invalidate during the load makes this copy stale for later callers
		if p.generation == gen {
			p.current = loaded
		}
		p.mu.Unlock()
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Dataset), nil
	}
}

// Snapshot returns the in-memory dataset without triggering a load
func (p *Provider) Snapshot() (*models.Dataset, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.current != nil
}

// Invalidate drops the in-memory copy and any cached snapshot
func (p *Provider) Invalidate(ctx context.Context) {
	p.mu.Lock()
	p.current = nil
	p.generation++
	p.mu.Unlock()

	if p.cache == nil {
		return
	}
	if err := p.cache.Delete(ctx, p.loader.Source()); err != nil {
		p.logger.WithComponent("dataset").WithError(err).Warn("Failed to delete dataset snapshot")
	}
}

// Refresh invalidates and reloads. A load already in flight for the previous
// generation is not reused.
func (p *Provider) Refresh(ctx context.Context) (*models.Dataset, error) {
	p.Invalidate(ctx)
	return p.Get(ctx)
}

func (p *Provider) load(ctx context.Context) (*models.Dataset, error) {
	source := p.loader.Source()
	log := p.logger.WithComponent("dataset").WithField("source", source)

	if p.cache != nil {
		cached, ok, err := p.cache.Get(ctx, source)
		switch {
		case err != nil:
			p.metrics.ObserveSnapshotLookup("error")
			log.WithError(err).Warn("Dataset snapshot unavailable, loading from source")
		case ok:
			p.metrics.ObserveSnapshotLookup("hit")
			p.logger.LogCacheOperation("get", source, true, 0)
			return cached, nil
		default:
			p.metrics.ObserveSnapshotLookup("miss")
		}
	}

	ctx, span := p.tracer.TraceDatasetLoad(ctx, source)
	start := time.Now()
	ds, err := p.loader.Load(ctx)
	elapsed := time.Since(start)
	if err != nil {
		p.metrics.ObserveDatasetLoad(source, 0, 0, elapsed, err)
		p.tracer.RecordComputation(span, telemetry.ComputationResult{Duration: elapsed, Err: err})
		return nil, fmt.Errorf("failed to load dataset from %s: %w", source, err)
	}

	symbols := len(ds.Symbols())
	p.metrics.ObserveDatasetLoad(source, ds.Len(), symbols, elapsed, nil)
	p.tracer.RecordComputation(span, telemetry.ComputationResult{Rows: ds.Len(), Symbols: symbols, Duration: elapsed})
	p.logger.LogDatasetLoad(source, ds.Len(), symbols, elapsed.Milliseconds())

	if p.cache != nil {
		if err := p.cache.Set(ctx, ds); err != nil {
			log.WithError(err).Warn("Failed to store dataset snapshot")
		}
	}
	return ds, nil
}
