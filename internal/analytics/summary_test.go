package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfndi/stockpulse-go/internal/models"
)

func TestSummarize(t *testing.T) {
	series := seriesOf("TCS.NS", 100, 110, 99)

	s, err := Summarize(series)

	require.NoError(t, err)
	assert.Equal(t, 3, s.Bars)
	assert.InDelta(t, 103.0, s.AvgClose, 1e-9)
	assert.Equal(t, 111.0, s.HighestPrice)
	assert.Equal(t, 98.0, s.LowestPrice)
	require.True(t, s.AvgReturn.Valid)
	assert.InDelta(t, 0.0, s.AvgReturn.Float, 1e-9)
	assert.Equal(t, day("2024-01-01"), s.Start)
	assert.Equal(t, day("2024-01-03"), s.End)
}

func TestSummarize_SingleBarHasNoReturn(t *testing.T) {
	s, err := Summarize(seriesOf("TCS.NS", 100))

	require.NoError(t, err)
	assert.False(t, s.AvgReturn.Valid)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(models.Series{Symbol: "TCS.NS"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHistory(t *testing.T) {
	h := History(seriesOf("TCS.NS", 10, 20))

	assert.Equal(t, []float64{10, 20}, h.Open)
	assert.Equal(t, []float64{11, 21}, h.High)
	assert.Equal(t, []float64{9, 19}, h.Low)
	assert.Equal(t, []float64{10, 20}, h.Close)
	assert.Len(t, h.Dates, 2)
}
