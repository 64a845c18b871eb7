// Package money provides common decimal utility functions for currency
// amounts.
package money

import "github.com/shopspring/decimal"

// Round2 rounds a value to two decimals, i.e. to represent real currency.
// Rounding is half-up for the non-negative amounts used throughout the
// quote math. Every report line item passes through here exactly once, at
// the point it is finalized; subtotals are sums of already-rounded items
// and are not re-rounded.
func Round2(val decimal.Decimal) decimal.Decimal {
	return val.Round(2)
}

// NonNegative clamps a value at zero.
func NonNegative(val decimal.Decimal) decimal.Decimal {
	if val.IsNegative() {
		return decimal.Zero
	}
	return val
}

// Max returns the larger of two values.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
