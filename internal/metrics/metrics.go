package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the analytics service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Dataset collaborator
	DatasetLoads        *prometheus.CounterVec // labels: source, result
	DatasetLoadDuration prometheus.Histogram
	DatasetRows         prometheus.Gauge
	DatasetSymbols      prometheus.Gauge
	SnapshotCache       *prometheus.CounterVec // labels: result=hit|miss|error

	// Engine
	Computations       *prometheus.CounterVec   // labels: operation, result
	ComputationSeconds *prometheus.HistogramVec // labels: operation
}

// NewMetrics creates all collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockpulse_dataset_loads_total",
			Help: "Dataset loads by source and result",
		}, []string{"source", "result"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockpulse_dataset_load_seconds",
			Help:    "Time spent loading the price table",
			Buckets: prometheus.DefBuckets,
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockpulse_dataset_rows",
			Help: "Rows in the currently loaded price table",
		}),
		DatasetSymbols: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockpulse_dataset_symbols",
			Help: "Distinct symbols in the currently loaded price table",
		}),
		SnapshotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockpulse_snapshot_cache_lookups_total",
			Help: "Redis snapshot cache lookups by result",
		}, []string{"result"}),
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockpulse_engine_computations_total",
			Help: "Analytics engine calls by operation and result",
		}, []string{"operation", "result"}),
		ComputationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockpulse_engine_computation_seconds",
			Help:    "Analytics engine latency by operation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.DatasetRows,
		m.DatasetSymbols,
		m.SnapshotCache,
		m.Computations,
		m.ComputationSeconds,
	)
	return m
}

// ObserveDatasetLoad records a dataset load attempt
func (m *Metrics) ObserveDatasetLoad(source string, rows, symbols int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DatasetLoads.WithLabelValues(source, "error").Inc()
		return
	}
	m.DatasetLoads.WithLabelValues(source, "ok").Inc()
	m.DatasetLoadDuration.Observe(elapsed.Seconds())
	m.DatasetRows.Set(float64(rows))
	m.DatasetSymbols.Set(float64(symbols))
}

// ObserveSnapshotLookup records a snapshot cache hit, miss or error
func (m *Metrics) ObserveSnapshotLookup(result string) {
	if m == nil {
		return
	}
	m.SnapshotCache.WithLabelValues(result).Inc()
}

// ObserveComputation records one engine call
func (m *Metrics) ObserveComputation(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Computations.WithLabelValues(operation, result).Inc()
	m.ComputationSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
}
