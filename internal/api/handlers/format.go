package handlers

import (
	"github.com/shopspring/decimal"
)

// Chart colors cycled across symbols, in order
var palette = []string{"#007bff", "#28a745", "#dc3545", "#ffc107", "#17a2b8", "#6610f2"}

func paletteColor(i int) string {
	return palette[i%len(palette)]
}

// round rounds half away from zero to places decimals
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func boolsToInts(flags []bool) []int {
	out := make([]int, len(flags))
	for i, f := range flags {
		if f {
			out[i] = 1
		}
	}
	return out
}
