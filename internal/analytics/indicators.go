package analytics

import (
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"

	"github.com/irfndi/stockpulse-go/internal/models"
)

// IndicatorConfig holds the windows used by ComputeIndicators
type IndicatorConfig struct {
	SMAWindow  int `json:"sma_window"`
	EMASpan    int `json:"ema_span"`
	MACDFast   int `json:"macd_fast"`
	MACDSlow   int `json:"macd_slow"`
	MACDSignal int `json:"macd_signal"`
	RSIPeriod  int `json:"rsi_period"`
}

// DefaultIndicatorConfig returns the dashboard defaults
func DefaultIndicatorConfig() IndicatorConfig {
	return IndicatorConfig{
		SMAWindow:  14,
		EMASpan:    14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		RSIPeriod:  14,
	}
}

// IndicatorFrame is a series plus its aligned derived columns
type IndicatorFrame struct {
	Symbol     string        `json:"symbol"`
	Dates      []time.Time   `json:"dates"`
	Close      []float64     `json:"close"`
	SMA        models.Values `json:"sma"`
	EMA        []float64     `json:"ema"`
	MACD       []float64     `json:"macd"`
	SignalLine []float64     `json:"signal_line"`
	RSI        models.Values `json:"rsi"`
}

// ComputeIndicators derives every indicator column for series
func ComputeIndicators(series models.Series, cfg IndicatorConfig) IndicatorFrame {
	closes := series.Closes()
	macd, signal := MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)

	return IndicatorFrame{
		Symbol:     series.Symbol,
		Dates:      series.Dates(),
		Close:      closes,
		SMA:        SMA(closes, cfg.SMAWindow),
		EMA:        EMA(closes, cfg.EMASpan),
		MACD:       macd,
		SignalLine: signal,
		RSI:        RSI(closes, cfg.RSIPeriod),
	}
}

// SMA calculates the strict simple moving average: positions with fewer than
// window observations are missing.
func SMA(values []float64, window int) models.Values {
	out := make(models.Values, len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	smaIndicator := trend.NewSmaWithPeriod[float64](window)
	result := helper.ChanToSlice(smaIndicator.Compute(helper.SliceToChan(values)))

	// the indicator drops its idle period, so align from the tail
	offset := len(values) - len(result)
	for i, v := range result {
		idx := offset + i
		if idx < window-1 {
			continue
		}
		out[idx] = models.NewValue(v)
	}
	return out
}

// RollingMean averages the trailing window of values, emitting a value once
// at least minPeriods observations are available. With minPeriods == window
// it matches SMA; with minPeriods == 1 it averages whatever history exists.
func RollingMean(values []float64, window, minPeriods int) models.Values {
	out := make(models.Values, len(values))
	if window <= 0 {
		return out
	}
	if minPeriods < 1 {
		minPeriods = 1
	}

	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		count := i - lo + 1
		if count < minPeriods {
			continue
		}
		sum := 0.0
		for _, v := range values[lo : i+1] {
			sum += v
		}
		out[i] = models.NewValue(sum / float64(count))
	}
	return out
}

// EMA calculates the non-adjusted exponential moving average with
// alpha = 2/(span+1). The first output equals the first input.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACD returns EMA(fast)-EMA(slow) of closes and the EMA(signal) of that line.
func MACD(closes []float64, fast, slow, signal int) ([]float64, []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	return macd, EMA(macd, signal)
}

// RSI calculates the Relative Strength Index from strict rolling means of
// gains and losses. The first bar contributes a zero change. A window with
// no losses scores 100; a window with neither gains nor losses is missing.
func RSI(closes []float64, period int) models.Values {
	out := make(models.Values, len(closes))
	if period <= 0 || len(closes) == 0 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		if diff > 0 {
			gains[i] = diff
		} else {
			losses[i] = -diff
		}
	}

	avgGain := RollingMean(gains, period, period)
	avgLoss := RollingMean(losses, period, period)
	for i := range closes {
		if !avgGain[i].Valid || !avgLoss[i].Valid {
			continue
		}
		out[i] = rsiFromAverages(avgGain[i].Float, avgLoss[i].Float)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) models.Value {
	if avgLoss == 0 {
		if avgGain > 0 {
			return models.NewValue(100)
		}
		return models.Missing()
	}
	rs := avgGain / avgLoss
	return models.NewValue(100 - 100/(1+rs))
}

// VolumeMA is the relaxed moving average of traded volume
func VolumeMA(series models.Series, window int) models.Values {
	return RollingMean(series.Volumes(), window, 1)
}
