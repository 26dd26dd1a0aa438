package models

import (
	"encoding/json"
	"math"
)

// Value is a numeric output that may be missing.
// A missing Value is distinct from zero and serialises as JSON null.
type Value struct {
	Float float64
	Valid bool
}

// NewValue wraps a present number. NaN and infinities are treated as missing.
func NewValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{Float: f, Valid: true}
}

// Missing returns the "no value" marker
func Missing() Value {
	return Value{}
}

// OrZero returns the number or 0 when missing
func (v Value) OrZero() float64 {
	if !v.Valid {
		return 0
	}
	return v.Float
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = NewValue(f)
	return nil
}

// Values is a column of optional numbers aligned with a Series
type Values []Value

// Floats returns the present numbers in order, skipping missing entries
func (vs Values) Floats() []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if v.Valid {
			out = append(out, v.Float)
		}
	}
	return out
}
