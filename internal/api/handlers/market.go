package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/stockpulse-go/internal/analytics"
	"github.com/irfndi/stockpulse-go/internal/models"
)

type SymbolsResponse struct {
	Symbols []string `json:"symbols"`
	Default string   `json:"default"`
}

type YearGrowthDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

type YearGrowthResponse struct {
	Years    []int               `json:"years"`
	Datasets []YearGrowthDataset `json:"datasets"`
}

type HeatmapResponse struct {
	Symbols []string `json:"symbols"`
	Dates   []string `json:"dates"`
	Matrix  [][]int  `json:"matrix"`
}

type VolatilityResponse struct {
	Symbols    []string  `json:"symbols"`
	Volatility []float64 `json:"volatility"`
}

type StrengthResponse struct {
	Symbols []string  `json:"symbols"`
	Scores  []float64 `json:"scores"`
}

// GetSymbols lists the distinct symbols in first-appearance order
func (h *AnalyticsHandler) GetSymbols(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SymbolsResponse{Symbols: ds.Symbols(), Default: h.settings.DefaultSymbol})
}

// GetYearWiseGrowth returns the mean daily return per symbol and calendar year
func (h *AnalyticsHandler) GetYearWiseGrowth(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var growth analytics.YearGrowth
	h.observeValue(c, "year_wise_growth", "", ds.Len(), func() {
		growth = analytics.YearWiseGrowth(ds)
	})

	datasets := make([]YearGrowthDataset, len(growth.Symbols))
	for i, symbol := range growth.Symbols {
		datasets[i] = YearGrowthDataset{
			Label:           symbol,
			Data:            growth.Column(symbol),
			BackgroundColor: paletteColor(i),
		}
	}
	c.JSON(http.StatusOK, YearGrowthResponse{Years: growth.Years, Datasets: datasets})
}

// GetMACDHeatmap returns the bullish/bearish MACD state grid for the recent window
func (h *AnalyticsHandler) GetMACDHeatmap(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var heatmap analytics.Heatmap
	h.observeValue(c, "macd_heatmap", "", ds.Len(), func() {
		heatmap = analytics.MomentumHeatmap(ds, h.settings.HeatmapDays, h.settings.Indicators)
	})

	c.JSON(http.StatusOK, HeatmapResponse{
		Symbols: heatmap.Symbols,
		Dates:   models.FormatDates(heatmap.Dates),
		Matrix:  heatmap.Matrix,
	})
}

// GetVolatility returns the standard deviation of daily returns per symbol
func (h *AnalyticsHandler) GetVolatility(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var scores []analytics.SymbolScore
	h.observeValue(c, "volatility", "", ds.Len(), func() {
		scores = analytics.Volatility(ds)
	})

	symbols, values := splitScores(scores)
	c.JSON(http.StatusOK, VolatilityResponse{Symbols: symbols, Volatility: values})
}

// GetStrengthScore returns the mean close-to-SMA ratio per symbol
func (h *AnalyticsHandler) GetStrengthScore(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var scores []analytics.SymbolScore
	h.observeValue(c, "strength_score", "", ds.Len(), func() {
		scores = analytics.StrengthScores(ds, h.settings.StrengthWindow)
	})

	symbols, values := splitScores(scores)
	c.JSON(http.StatusOK, StrengthResponse{Symbols: symbols, Scores: values})
}

func splitScores(scores []analytics.SymbolScore) ([]string, []float64) {
	symbols := make([]string, len(scores))
	values := make([]float64, len(scores))
	for i, s := range scores {
		symbols[i] = s.Symbol
		values[i] = s.Value
	}
	return symbols, values
}
