// Package parse is the normalization boundary for loosely-typed borrower
// input. Every function accepts whatever the transport decoded (strings,
// numbers, booleans, nil, arrays, objects), always returns a valid domain
// value, and never returns an error. All leniency with garbage input lives
// here so the decimal arithmetic downstream can stay strict.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Tokens that mean "zero" in answers like "any HOA dues?" -> "none".
var zeroTokens = map[string]struct{}{
	"":     {},
	"no":   {},
	"none": {},
	"n/a":  {},
	"na":   {},
	"nil":  {},
	"null": {},
}

// asString renders a raw scalar as trimmed text. Non-scalar values (arrays,
// objects) render as empty, which downstream grammars treat as absent.
func asString(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return ""
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	default:
		if s, ok := raw.(fmt.Stringer); ok {
			return strings.TrimSpace(s.String())
		}
		return ""
	}
}

// asDecimal converts a native numeric value directly, bypassing the text
// grammar. The second return reports whether raw was numeric.
func asDecimal(raw interface{}) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return decimal.NewFromInt(int64(v)), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		return decimal.NewFromInt(int64(v)), true
	}
	return decimal.Zero, false
}

// amountText applies the amount grammar to lowercased text: optional "$",
// thousands separators, whitespace, and a trailing "k" or "m" multiplier.
// The second return reports whether the text parsed as a number at all;
// zero tokens ("no", "none", ...) count as a successful zero.
func amountText(s string) (decimal.Decimal, bool) {
	if _, ok := zeroTokens[s]; ok {
		return decimal.Zero, true
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	mult := decimal.NewFromInt(1)
	if strings.HasSuffix(s, "k") {
		mult = decimal.NewFromInt(1000)
		s = strings.TrimSuffix(s, "k")
	} else if strings.HasSuffix(s, "m") {
		mult = decimal.NewFromInt(1000000)
		s = strings.TrimSuffix(s, "m")
	}

	if !numberPattern.MatchString(s) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Mul(mult), true
}

// Amount parses a currency amount. Accepted text forms include "$350k",
// "350,000", "1.2m", "100", "no", "none". Anything unparseable, absent, or
// negative yields zero.
func Amount(raw interface{}) decimal.Decimal {
	if d, ok := asDecimal(raw); ok {
		if d.IsNegative() {
			return decimal.Zero
		}
		return d
	}

	d, ok := amountText(strings.ToLower(asString(raw)))
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// PercentOrAmount parses a value that may be either a percentage or a plain
// amount: "10%" -> 10 with isPercent true, "35000" -> 35000 with isPercent
// false. Percent values are returned as the percentage figure, not a
// decimal fraction; the caller divides by 100.
func PercentOrAmount(raw interface{}) (value decimal.Decimal, isPercent bool) {
	s := strings.ToLower(asString(raw))
	if strings.HasSuffix(s, "%") {
		return Amount(strings.TrimSuffix(s, "%")), true
	}
	return Amount(raw), false
}

// Rate parses an interest rate with deliberate tolerance for the three ways
// people write the same rate: "6.125%" -> 0.06125, 6.125 -> 0.06125, and
// 0.06125 -> 0.06125. Numeric or plain-text values greater than 1 are read
// as percentages; values at or below 1 are already decimal fractions.
// Absent or unparseable input yields the supplied default.
func Rate(raw interface{}, defaultRate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	if d, ok := asDecimal(raw); ok {
		if d.IsNegative() {
			return defaultRate
		}
		if d.LessThanOrEqual(one) {
			return d
		}
		return d.Div(hundred)
	}

	s := strings.ToLower(asString(raw))
	if s == "" {
		return defaultRate
	}
	if strings.HasSuffix(s, "%") {
		return Amount(strings.TrimSuffix(s, "%")).Div(hundred)
	}

	d, ok := amountText(s)
	if !ok || d.IsNegative() {
		return defaultRate
	}
	if d.LessThanOrEqual(one) {
		return d
	}
	return d.Div(hundred)
}

// Tristate is the result of boolean parsing: text that is recognizably true
// or false, or neither, letting the caller infer intent another way (for
// example from a "%" suffix in a paired value field).
type Tristate int

const (
	Unknown Tristate = iota
	True
	False
)

// Bool parses a yes/no answer. {true,t,yes,y,1} -> True, {false,f,no,n,0}
// -> False, anything else -> Unknown.
func Bool(raw interface{}) Tristate {
	if b, ok := raw.(bool); ok {
		if b {
			return True
		}
		return False
	}

	s := strings.ToLower(asString(raw))
	switch s {
	case "true", "t", "yes", "y", "1":
		return True
	case "false", "f", "no", "n", "0":
		return False
	}

	if d, ok := asDecimal(raw); ok {
		if d.IsZero() {
			return False
		}
		if d.Equal(decimal.NewFromInt(1)) {
			return True
		}
	}
	return Unknown
}

// Score parses a credit score to an integer, defaulting to zero.
func Score(raw interface{}) int {
	return int(Amount(raw).IntPart())
}
