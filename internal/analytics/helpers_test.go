package analytics

import (
	"time"

	"github.com/irfndi/stockpulse-go/internal/models"
)

func day(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func bar(symbol, date string, close float64) models.PriceBar {
	return models.PriceBar{
		Symbol: symbol,
		Date:   day(date),
		Open:   close,
		High:   close + 1,
		Low:    close - 1,
		Close:  close,
		Volume: 1000,
	}
}

// dailyBars builds consecutive calendar-day bars starting at start
func dailyBars(symbol, start string, closes ...float64) []models.PriceBar {
	first := day(start)
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = bar(symbol, first.AddDate(0, 0, i).Format(models.DateLayout), c)
	}
	return bars
}

func dataset(groups ...[]models.PriceBar) *models.Dataset {
	ds := &models.Dataset{Source: "test"}
	for _, g := range groups {
		ds.Rows = append(ds.Rows, g...)
	}
	return ds
}

func seriesOf(symbol string, closes ...float64) models.Series {
	return models.Series{Symbol: symbol, Bars: dailyBars(symbol, "2024-01-01", closes...)}
}
