// Package money holds the decimal arithmetic shared by product-line math:
// exact percentage application and the percent-range check.
package money

import (
	"github.com/shopspring/decimal"
)

// Percentage computes amount * (percentage/100) exactly, no rounding.
// Shift keeps the division by 100 exact regardless of DivisionPrecision.
func Percentage(amount, percentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(percentage).Shift(-2)
}

// IsPercent reports whether d lies in the inclusive 0..100 range
func IsPercent(d decimal.Decimal) bool {
	hundred := decimal.NewFromInt(100)
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}
