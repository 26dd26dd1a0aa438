package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate(t *testing.T) {
	router, _ := newTestRouter(&staticSource{ds: testDataset()})

	t.Run("rising series", func(t *testing.T) {
		var body SimulationResponse
		code := get(t, router, "/api/simulate?symbol=AXISBANK.NS&start_date=2024-01-01&amount=1000", &body)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 1610.0, body.FinalValue)
		assert.Equal(t, 61.0, body.ReturnPct)
		assert.Equal(t, "2024-01-01", body.StartDate)
		assert.Equal(t, "2024-03-22", body.EndDate)
	})

	t.Run("rounded to cents", func(t *testing.T) {
		var body SimulationResponse
		code := get(t, router, "/api/simulate?symbol=AXISBANK.NS&start_date=2024-01-02&amount=333", &body)

		require.Equal(t, http.StatusOK, code)
		// 333 * 161 / 102
		assert.Equal(t, 525.62, body.FinalValue)
		assert.Equal(t, 57.84, body.ReturnPct)
	})

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"missing start", "/api/simulate?amount=1000", http.StatusBadRequest},
		{"zero amount", "/api/simulate?start_date=2024-01-01&amount=0", http.StatusBadRequest},
		{"missing amount", "/api/simulate?start_date=2024-01-01", http.StatusBadRequest},
		{"non-numeric amount", "/api/simulate?start_date=2024-01-01&amount=lots", http.StatusBadRequest},
		{"malformed date", "/api/simulate?start_date=2024/01/01&amount=1000", http.StatusBadRequest},
		{"after last bar", "/api/simulate?start_date=2030-01-01&amount=1000", http.StatusNotFound},
		{"unknown symbol", "/api/simulate?symbol=NOPE&start_date=2024-01-01&amount=1000", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body ErrorResponse
			code := get(t, router, tt.url, &body)
			assert.Equal(t, tt.want, code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestIfBought(t *testing.T) {
	router, _ := newTestRouter(&staticSource{ds: testDataset()})

	t.Run("trajectory", func(t *testing.T) {
		var body IfBoughtResponse
		code := get(t, router, "/api/ifbought?symbol=ITC.NS&date=2024-03-20", &body)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, []string{"2024-03-20", "2024-03-21", "2024-03-22"}, body.Dates)
		assert.Equal(t, []float64{1000, 1000, 1000}, body.InvestmentValue)
		assert.Equal(t, 1000.0, body.Principal)
	})

	t.Run("buy date on a weekend uses next bar", func(t *testing.T) {
		var body IfBoughtResponse
		code := get(t, router, "/api/ifbought?symbol=AXISBANK.NS&date=2024-03-16", &body)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "2024-03-18", body.Dates[0])
		assert.Equal(t, 1000.0, body.InvestmentValue[0])
	})

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/api/ifbought?symbol=ITC.NS", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/api/ifbought?symbol=ITC.NS&date=20-03-2024", nil))
	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/ifbought?symbol=NOPE&date=2024-03-20", nil))
}
