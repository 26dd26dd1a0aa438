package analytics

import (
	"fmt"
	"time"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// IfBoughtPrincipal is the fixed amount tracked by IfBought
const IfBoughtPrincipal = 1000.0

// GrowthResult is the outcome of investing Amount at the first close on or
// after Start and holding until the last bar. Values are not rounded.
type GrowthResult struct {
	Symbol       string    `json:"symbol"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Amount       float64   `json:"amount"`
	InitialPrice float64   `json:"initial_price"`
	FinalPrice   float64   `json:"final_price"`
	FinalValue   float64   `json:"final_value"`
	ReturnPct    float64   `json:"return_pct"`
}

// Trajectory is the value of IfBoughtPrincipal through time
type Trajectory struct {
	Symbol    string      `json:"symbol"`
	Principal float64     `json:"principal"`
	Dates     []time.Time `json:"dates"`
	Values    []float64   `json:"values"`
}

// GrowthOfAmount simulates a buy-and-hold of amount from start to the end of
// the symbol's history.
func GrowthOfAmount(ds *models.Dataset, symbol, start string, amount float64) (GrowthResult, error) {
	if start == "" {
		return GrowthResult{}, NewValidationError("start_date", "start date is required")
	}
	if amount <= 0 {
		return GrowthResult{}, NewValidationErrorf("amount", "amount must be positive, got %v", amount)
	}

	series, err := boundedFrom(ds, symbol, start)
	if err != nil {
		return GrowthResult{}, err
	}

	first := series.Bars[0]
	last := series.Bars[len(series.Bars)-1]
	finalValue := amount * last.Close / first.Close

	return GrowthResult{
		Symbol:       symbol,
		Start:        first.Date,
		End:          last.Date,
		Amount:       amount,
		InitialPrice: first.Close,
		FinalPrice:   last.Close,
		FinalValue:   finalValue,
		ReturnPct:    100 * (finalValue - amount) / amount,
	}, nil
}

// IfBought tracks IfBoughtPrincipal invested at the first close on or after
// buyDate, for every subsequent bar.
func IfBought(ds *models.Dataset, symbol, buyDate string) (Trajectory, error) {
	if buyDate == "" {
		return Trajectory{}, NewValidationError("date", "no buy date provided")
	}

	series, err := boundedFrom(ds, symbol, buyDate)
	if err != nil {
		return Trajectory{}, err
	}

	initial := series.Bars[0].Close
	values := make([]float64, len(series.Bars))
	for i, bar := range series.Bars {
		values[i] = IfBoughtPrincipal * bar.Close / initial
	}

	return Trajectory{
		Symbol:    symbol,
		Principal: IfBoughtPrincipal,
		Dates:     series.Dates(),
		Values:    values,
	}, nil
}

func boundedFrom(ds *models.Dataset, symbol, from string) (models.Series, error) {
	fromDate, err := models.ParseDate(from)
	if err != nil {
		return models.Series{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, from)
	}

	series := SelectFrom(ds, symbol, fromDate)
	if series.Empty() {
		return series, fmt.Errorf("%w: %s since %s", ErrNoData, symbol, from)
	}
	if series.Bars[0].Close <= 0 {
		return series, fmt.Errorf("%w: %s has no positive close on %s", ErrNoData, symbol, series.Bars[0].Date.Format(models.DateLayout))
	}
	return series, nil
}
