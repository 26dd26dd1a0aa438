package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/stockpulse-go/internal/analytics"
	"github.com/irfndi/stockpulse-go/internal/models"
)

type SimulationResponse struct {
	Symbol       string  `json:"symbol"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Amount       float64 `json:"amount"`
	InitialPrice float64 `json:"initial_price"`
	FinalPrice   float64 `json:"final_price"`
	FinalValue   float64 `json:"final_value"`
	ReturnPct    float64 `json:"return_pct"`
}

type IfBoughtResponse struct {
	Symbol          string    `json:"symbol"`
	Principal       float64   `json:"principal"`
	Dates           []string  `json:"dates"`
	InvestmentValue []float64 `json:"investment_value"`
}

// Simulate values a buy-and-hold of amount from start_date to the last bar
func (h *AnalyticsHandler) Simulate(c *gin.Context) {
	symbol := h.symbol(c)

	amount := 0.0
	if raw := c.Query("amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeEngineError(c, analytics.NewValidationErrorf("amount", "amount %q is not a number", raw))
			return
		}
		amount = parsed
	}

	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var result analytics.GrowthResult
	err := h.observe(c, "simulate", symbol, ds.Len(), func() error {
		var err error
		result, err = analytics.GrowthOfAmount(ds, symbol, c.Query("start_date"), amount)
		return err
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, SimulationResponse{
		Symbol:       result.Symbol,
		StartDate:    result.Start.Format(models.DateLayout),
		EndDate:      result.End.Format(models.DateLayout),
		Amount:       result.Amount,
		InitialPrice: result.InitialPrice,
		FinalPrice:   result.FinalPrice,
		FinalValue:   round(result.FinalValue, 2),
		ReturnPct:    round(result.ReturnPct, 2),
	})
}

// IfBought tracks a fixed principal invested on date
func (h *AnalyticsHandler) IfBought(c *gin.Context) {
	symbol := h.symbol(c)

	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var trajectory analytics.Trajectory
	err := h.observe(c, "ifbought", symbol, ds.Len(), func() error {
		var err error
		trajectory, err = analytics.IfBought(ds, symbol, c.Query("date"))
		return err
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, IfBoughtResponse{
		Symbol:          trajectory.Symbol,
		Principal:       trajectory.Principal,
		Dates:           models.FormatDates(trajectory.Dates),
		InvestmentValue: trajectory.Values,
	})
}
