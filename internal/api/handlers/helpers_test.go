package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/irfndi/stockpulse-go/internal/logging"
	"github.com/irfndi/stockpulse-go/internal/metrics"
	"github.com/irfndi/stockpulse-go/internal/models"
)

// staticSource serves a fixed dataset or a fixed error
type staticSource struct {
	ds  *models.Dataset
	err error
}

func (s *staticSource) Get(context.Context) (*models.Dataset, error) {
	return s.ds, s.err
}

func (s *staticSource) Snapshot() (*models.Dataset, bool) {
	return s.ds, s.ds != nil
}

func (s *staticSource) Source() string {
	return "static"
}

func (s *staticSource) Refresh(context.Context) (*models.Dataset, error) {
	return s.ds, s.err
}

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func quietLogger() *logging.StandardLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logging.Wrap(l)
}

// businessDays returns n weekdays starting at from
func businessDays(from time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for d := from; len(out) < n; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		out = append(out, d)
	}
	return out
}

// testDataset holds 60 weekdays of AXISBANK.NS (rising with a wobble) followed by 60 of ITC.NS (flat)
func testDataset() *models.Dataset {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]models.PriceBar, 0, 120)
	for i, d := range businessDays(start, 60) {
		close := 100 + float64(i) + float64(i%3)
		rows = append(rows, models.PriceBar{Symbol: "AXISBANK.NS", Date: d, Open: close - 0.5, High: close + 1, Low: close - 1, Close: close, Volume: int64(1000 + i)})
	}
	for _, d := range businessDays(start, 60) {
		rows = append(rows, models.PriceBar{Symbol: "ITC.NS", Date: d, Open: 450, High: 451, Low: 449, Close: 450, Volume: 500})
	}
	return &models.Dataset{Rows: rows, Source: "static", LoadedAt: start}
}

func newTestRouter(source *staticSource) (*gin.Engine, *metrics.Metrics) {
	gin.SetMode(gin.TestMode)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	h := NewAnalyticsHandler(source, DefaultSettings(), quietLogger(), m)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/symbols", h.GetSymbols)
	api.GET("/stock-data", h.GetStockData)
	api.GET("/price-history", h.GetPriceHistory)
	api.GET("/daily-returns", h.GetDailyReturns)
	api.GET("/volume-traded", h.GetVolumeTraded)
	api.GET("/returns-by-day", h.GetReturnsByDay)
	api.GET("/year-wise-growth", h.GetYearWiseGrowth)
	api.GET("/technical-indicators", h.GetTechnicalIndicators)
	api.GET("/backtested-signals", h.GetBacktestedSignals)
	api.GET("/simulate", h.Simulate)
	api.GET("/ifbought", h.IfBought)
	api.GET("/macd-heatmap", h.GetMACDHeatmap)
	api.GET("/volatility", h.GetVolatility)
	api.GET("/strength-score", h.GetStrengthScore)
	api.GET("/summary", h.GetSummary)
	return router, m
}

func get(t *testing.T, router http.Handler, url string, out interface{}) int {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

var errBoom = errors.New("boom")
