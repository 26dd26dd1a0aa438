package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCrossovers(t *testing.T) {
	macd := []float64{0, 1, -1, -1, 1}
	signal := []float64{0, 0, 0, 0, 0}

	c := DetectCrossovers(macd, signal)

	assert.Equal(t, []bool{false, true, false, false, true}, c.Buy)
	assert.Equal(t, []bool{false, false, true, false, false}, c.Sell)
}

func TestDetectCrossovers_FlatTouchFiresOnce(t *testing.T) {
	macd := []float64{1, 0, 1}
	signal := []float64{0, 0, 0}

	c := DetectCrossovers(macd, signal)

	assert.Equal(t, []bool{false, false, true}, c.Buy)
	assert.Equal(t, []bool{false, false, false}, c.Sell)
}

func TestDetectCrossovers_NeverAtIndexZeroAndExclusive(t *testing.T) {
	series := seriesOf("TCS.NS", 10, 9, 11, 8, 12, 7, 13, 6, 14, 5, 15, 10, 10, 20, 1, 30, 2, 25)
	frame := BacktestSignals(series, IndicatorConfig{MACDFast: 2, MACDSlow: 4, MACDSignal: 2})

	require.Len(t, frame.Buy, series.Len())
	require.Len(t, frame.Sell, series.Len())
	assert.False(t, frame.Buy[0])
	assert.False(t, frame.Sell[0])
	fired := 0
	for i := range frame.Buy {
		assert.False(t, frame.Buy[i] && frame.Sell[i], "index %d", i)
		if frame.Buy[i] || frame.Sell[i] {
			fired++
		}
	}
	assert.Greater(t, fired, 0)
}

func TestCrossovers_Events(t *testing.T) {
	series := seriesOf("TCS.NS", 1, 2, 3, 4, 5)
	c := Crossovers{
		Buy:  []bool{false, true, false, false, false},
		Sell: []bool{false, false, false, true, false},
	}

	events := c.Events(series.Dates())

	require.Len(t, events, 2)
	assert.Equal(t, SignalBuy, events[0].Kind)
	assert.Equal(t, day("2024-01-02"), events[0].Date)
	assert.Equal(t, SignalSell, events[1].Kind)
	assert.Equal(t, day("2024-01-04"), events[1].Date)
}

func TestDetectCrossovers_Empty(t *testing.T) {
	c := DetectCrossovers(nil, nil)
	assert.Empty(t, c.Buy)
	assert.Empty(t, c.Sell)
}
