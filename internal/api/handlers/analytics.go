package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/irfndi/stockpulse-go/internal/analytics"
	"github.com/irfndi/stockpulse-go/internal/config"
	"github.com/irfndi/stockpulse-go/internal/logging"
	"github.com/irfndi/stockpulse-go/internal/metrics"
	"github.com/irfndi/stockpulse-go/internal/middleware"
	"github.com/irfndi/stockpulse-go/internal/models"
	"github.com/irfndi/stockpulse-go/internal/telemetry"
)

// DatasetSource hands out the shared, read-only price table
type DatasetSource interface {
	Get(ctx context.Context) (*models.Dataset, error)
}

// Settings carries the operator-tunable analytics parameters
type Settings struct {
	DefaultSymbol  string
	Indicators     analytics.IndicatorConfig
	VolumeMAWindow int
	StrengthWindow int
	HeatmapDays    int
}

// SettingsFromConfig maps the application config onto handler settings
func SettingsFromConfig(cfg *config.Config) Settings {
	a := cfg.Analytics
	return Settings{
		DefaultSymbol: cfg.Dataset.DefaultSymbol,
		Indicators: analytics.IndicatorConfig{
			SMAWindow:  a.SMAWindow,
			EMASpan:    a.EMASpan,
			MACDFast:   a.MACDFast,
			MACDSlow:   a.MACDSlow,
			MACDSignal: a.MACDSignal,
			RSIPeriod:  a.RSIPeriod,
		},
		VolumeMAWindow: a.VolumeMAWindow,
		StrengthWindow: a.StrengthWindow,
		HeatmapDays:    a.HeatmapDays,
	}
}

// DefaultSettings mirrors the config defaults
func DefaultSettings() Settings {
	return Settings{
		DefaultSymbol:  "AXISBANK.NS",
		Indicators:     analytics.DefaultIndicatorConfig(),
		VolumeMAWindow: 50,
		StrengthWindow: 50,
		HeatmapDays:    analytics.DefaultHeatmapDays,
	}
}

// AnalyticsHandler serves the /api analytics endpoints
type AnalyticsHandler struct {
	source   DatasetSource
	settings Settings
	logger   *logging.StandardLogger
	metrics  *metrics.Metrics
	tracer   *telemetry.EngineTracer
}

func NewAnalyticsHandler(source DatasetSource, settings Settings, logger *logging.StandardLogger, m *metrics.Metrics) *AnalyticsHandler {
	return &AnalyticsHandler{
		source:   source,
		settings: settings,
		logger:   logger,
		metrics:  m,
		tracer:   telemetry.NewEngineTracer(),
	}
}

// ErrorResponse is the body of every non-2xx analytics response
type ErrorResponse struct {
	Error string `json:"error"`
}

// symbol returns the requested symbol or the configured default
func (h *AnalyticsHandler) symbol(c *gin.Context) string {
	return c.DefaultQuery("symbol", h.settings.DefaultSymbol)
}

// dataset fetches the price table, writing a 500 when it cannot be loaded
func (h *AnalyticsHandler) dataset(c *gin.Context) (*models.Dataset, bool) {
	ds, err := h.source.Get(c.Request.Context())
	if err != nil {
		h.logger.WithComponent("api").WithError(err).Error("Dataset unavailable")
		middleware.RecordError(c, err, "dataset unavailable")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "dataset unavailable"})
		return nil, false
	}
	return ds, true
}

// selectSeries runs Select with the request's symbol and date range.
// It writes a 400 and returns false when the selection is empty or malformed.
func (h *AnalyticsHandler) selectSeries(c *gin.Context, ds *models.Dataset) (models.Series, bool) {
	series, err := analytics.Select(ds, h.symbol(c), c.Query("start_date"), c.Query("end_date"))
	if err != nil || series.Empty() {
		if err != nil {
			middleware.RecordError(c, err, "invalid selection")
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid symbol or date range"})
		return series, false
	}
	return series, true
}

// observe records metrics and a span around one engine call
func (h *AnalyticsHandler) observe(c *gin.Context, operation, symbol string, rows int, fn func() error) error {
	ctx, span := h.tracer.TraceComputation(c.Request.Context(), operation, symbol)
	c.Request = c.Request.WithContext(ctx)

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	h.metrics.ObserveComputation(operation, elapsed, err)
	h.tracer.RecordComputation(span, telemetry.ComputationResult{Rows: rows, Duration: elapsed, Err: err})
	if err != nil {
		h.logger.WithOperation(operation).WithFields(logrus.Fields{
			"symbol": symbol,
			"error":  err.Error(),
		}).Debug("Engine call failed")
	}
	return err
}

// observeValue is observe for engine calls that cannot fail
func (h *AnalyticsHandler) observeValue(c *gin.Context, operation, symbol string, rows int, fn func()) {
	_ = h.observe(c, operation, symbol, rows, func() error {
		fn()
		return nil
	})
}

// writeEngineError maps engine error kinds onto HTTP statuses
func writeEngineError(c *gin.Context, err error) {
	middleware.RecordError(c, err, err.Error())
	switch {
	case errors.Is(err, analytics.ErrInvalidParameter), errors.Is(err, analytics.ErrInvalidDateFormat):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, analytics.ErrNoData):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No data available for this selection"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
