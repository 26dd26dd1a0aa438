package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/stockpulse-go/internal/analytics"
	"github.com/irfndi/stockpulse-go/internal/models"
)

// StockRecord is one row of /api/stock-data
type StockRecord struct {
	Date     string  `json:"Date"`
	Open     float64 `json:"Open"`
	High     float64 `json:"High"`
	Low      float64 `json:"Low"`
	Close    float64 `json:"Close"`
	Volume   int64   `json:"Volume"`
	Symbol   string  `json:"Symbol"`
	VolumeMA float64 `json:"Volume_MA"`
}

type PriceHistoryResponse struct {
	Dates []string  `json:"dates"`
	Open  []float64 `json:"open"`
	High  []float64 `json:"high"`
	Low   []float64 `json:"low"`
	Close []float64 `json:"close"`
}

type DailyReturnsResponse struct {
	Dates   []string      `json:"dates"`
	Returns models.Values `json:"returns"`
}

type VolumeResponse struct {
	Dates    []string      `json:"dates"`
	Volume   []int64       `json:"volume"`
	VolumeMA models.Values `json:"volume_ma"`
}

type IndicatorsResponse struct {
	Dates      []string      `json:"dates"`
	SMA        models.Values `json:"SMA"`
	EMA        []float64     `json:"EMA"`
	MACD       []float64     `json:"MACD"`
	SignalLine []float64     `json:"Signal_Line"`
	RSI        models.Values `json:"RSI"`
}

type SignalEventResponse struct {
	Date string `json:"date"`
	Kind string `json:"kind"`
}

type SignalsResponse struct {
	Dates       []string              `json:"dates"`
	BuySignals  []int                 `json:"buy_signals"`
	SellSignals []int                 `json:"sell_signals"`
	Events      []SignalEventResponse `json:"events"`
}

type SummaryResponse struct {
	Symbol       string       `json:"stock_symbol"`
	AvgClose     float64      `json:"avg_close"`
	HighestPrice float64      `json:"highest_price"`
	LowestPrice  float64      `json:"lowest_price"`
	AvgReturn    models.Value `json:"avg_return"`
	Bars         int          `json:"bars"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
}

// GetStockData returns the selected rows with their volume moving average
func (h *AnalyticsHandler) GetStockData(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	series, ok := h.selectSeries(c, ds)
	if !ok {
		return
	}

	var volumeMA models.Values
	h.observeValue(c, "stock_data", series.Symbol, series.Len(), func() {
		volumeMA = analytics.VolumeMA(series, h.settings.VolumeMAWindow)
	})

	records := make([]StockRecord, series.Len())
	for i, bar := range series.Bars {
		records[i] = StockRecord{
			Date:     bar.Date.Format(models.DateLayout),
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			Volume:   bar.Volume,
			Symbol:   bar.Symbol,
			VolumeMA: volumeMA[i].OrZero(),
		}
	}
	c.JSON(http.StatusOK, records)
}

// GetPriceHistory returns the OHLC columns of the selection
func (h *AnalyticsHandler) GetPriceHistory(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	series, ok := h.selectSeries(c, ds)
	if !ok {
		return
	}

	var history analytics.PriceHistory
	h.observeValue(c, "price_history", series.Symbol, series.Len(), func() {
		history = analytics.History(series)
	})

	c.JSON(http.StatusOK, PriceHistoryResponse{
		Dates: models.FormatDates(history.Dates),
		Open:  history.Open,
		High:  history.High,
		Low:   history.Low,
		Close: history.Close,
	})
}

// GetDailyReturns returns the percent change of each close, null on the first bar
func (h *AnalyticsHandler) GetDailyReturns(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	series, ok := h.selectSeries(c, ds)
	if !ok {
		return
	}

	var returns models.Values
	h.observeValue(c, "daily_returns", series.Symbol, series.Len(), func() {
		returns = analytics.DailyReturns(series.Closes())
	})

	c.JSON(http.StatusOK, DailyReturnsResponse{Dates: series.DateStrings(), Returns: returns})
}

// GetVolumeTraded returns volume and its moving average
func (h *AnalyticsHandler) GetVolumeTraded(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	series, ok := h.selectSeries(c, ds)
	if !ok {
		return
	}

	var volumeMA models.Values
	h.observeValue(c, "volume_traded", series.Symbol, series.Len(), func() {
		volumeMA = analytics.VolumeMA(series, h.settings.VolumeMAWindow)
	})

	volumes := make([]int64, series.Len())
	for i, bar := range series.Bars {
		volumes[i] = bar.Volume
	}
	c.JSON(http.StatusOK, VolumeResponse{Dates: series.DateStrings(), Volume: volumes, VolumeMA: volumeMA})
}

// GetReturnsByDay returns the mean daily return per weekday, rounded to 4 places.
// An empty or malformed selection yields zeros rather than an error.
func (h *AnalyticsHandler) GetReturnsByDay(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	series, err := analytics.Select(ds, h.symbol(c), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		series = models.Series{Symbol: h.symbol(c)}
	}

	var weekdays []analytics.WeekdayReturn
	h.observeValue(c, "returns_by_day", series.Symbol, series.Len(), func() {
		weekdays = analytics.ReturnsByWeekday(series)
	})

	out := make(map[string]float64, len(weekdays))
	for _, wd := range weekdays {
		out[wd.Name] = round(wd.Average, 4)
	}
	c.JSON(http.StatusOK, out)
}

// GetTechnicalIndicators returns SMA, EMA, MACD, signal line and RSI for the selection
func (h *AnalyticsHandler) GetTechnicalIndicators(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	series, ok := h.selectSeries(c, ds)
	if !ok {
		return
	}

	var frame analytics.IndicatorFrame
	h.observeValue(c, "technical_indicators", series.Symbol, series.Len(), func() {
		frame = analytics.ComputeIndicators(series, h.settings.Indicators)
	})

	c.JSON(http.StatusOK, IndicatorsResponse{
		Dates:      models.FormatDates(frame.Dates),
		SMA:        frame.SMA,
		EMA:        frame.EMA,
		MACD:       frame.MACD,
		SignalLine: frame.SignalLine,
		RSI:        frame.RSI,
	})
}

// GetBacktestedSignals returns MACD/signal-line crossovers as 0/1 flags and as events
func (h *AnalyticsHandler) GetBacktestedSignals(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	series, ok := h.selectSeries(c, ds)
	if !ok {
		return
	}

	var frame analytics.SignalFrame
	h.observeValue(c, "backtested_signals", series.Symbol, series.Len(), func() {
		frame = analytics.BacktestSignals(series, h.settings.Indicators)
	})

	events := frame.Events(frame.Dates)
	eventResponses := make([]SignalEventResponse, len(events))
	for i, e := range events {
		eventResponses[i] = SignalEventResponse{Date: e.Date.Format(models.DateLayout), Kind: string(e.Kind)}
	}

	c.JSON(http.StatusOK, SignalsResponse{
		Dates:       models.FormatDates(frame.Dates),
		BuySignals:  boolsToInts(frame.Buy),
		SellSignals: boolsToInts(frame.Sell),
		Events:      eventResponses,
	})
}

// GetSummary returns descriptive statistics of the selection
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	series, err := analytics.Select(ds, h.symbol(c), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeEngineError(c, err)
		return
	}

	var summary analytics.Summary
	err = h.observe(c, "summary", series.Symbol, series.Len(), func() error {
		var err error
		summary, err = analytics.Summarize(series)
		return err
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Symbol:       summary.Symbol,
		AvgClose:     summary.AvgClose,
		HighestPrice: summary.HighestPrice,
		LowestPrice:  summary.LowestPrice,
		AvgReturn:    summary.AvgReturn,
		Bars:         summary.Bars,
		StartDate:    c.DefaultQuery("start_date", "N/A"),
		EndDate:      c.DefaultQuery("end_date", "N/A"),
	})
}
