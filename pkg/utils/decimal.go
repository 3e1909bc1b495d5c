package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Decimal converts v for exact arithmetic. NaN becomes zero and infinities
// become the largest finite float64 of the same sign, since decimals have no
// representation for either.
func Decimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(Saturate(v))
}

// Float converts d back to float64, saturating at ±math.MaxFloat64 instead
// of overflowing to infinity.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return Saturate(f)
}

// Saturate clamps infinities to ±math.MaxFloat64 and maps NaN to zero.
func Saturate(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}
