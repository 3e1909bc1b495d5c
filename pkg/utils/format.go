// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no display currency is configured.
const DefaultCurrency = "USD"

// ValidCurrency reports whether code is a known ISO 4217 currency.
func ValidCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// NewMoney converts amount to a Money value in the currency's minor units,
// rounding half away from zero. It returns nil for unknown currencies.
func NewMoney(amount float64, currency string) *money.Money {
	code := strings.ToUpper(currency)
	cur := money.GetCurrency(code)
	if cur == nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0)
	return money.New(minor.IntPart(), code)
}

// FormatMoney formats amount in currency, e.g. "$1,234.50" or "-$5.00".
// Unknown currencies fall back to "1234.50 XYZ".
func FormatMoney(amount float64, currency string) string {
	m := NewMoney(amount, currency)
	if m == nil {
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
	return m.Display()
}

// FormatPnL formats a profit or loss with an explicit sign.
func FormatPnL(pnl float64, currency string) string {
	formatted := FormatMoney(pnl, currency)
	if pnl > 0 && !strings.HasPrefix(formatted, "+") {
		return "+" + formatted
	}
	return formatted
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatRate formats an unsigned percentage such as a win rate.
func FormatRate(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatRatio formats a ratio such as a risk/reward as "1:2.50".
func FormatRatio(value float64) string {
	return fmt.Sprintf("1:%.2f", value)
}

// FormatLot formats a lot size without trailing zeros.
func FormatLot(lot float64) string {
	return decimal.NewFromFloat(lot).String()
}
