package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Round up at midpoint", "1.235", "1.24"},
		{"Round down below midpoint", "1.234", "1.23"},
		{"No rounding needed", "1.23", "1.23"},
		{"Large number", "12345.678", "12345.68"},
		{"Half cent rounds up", "0.005", "0.01"},
		{"Zero", "0", "0.00"},
		{"Exact cents preserved", "6755.00", "6755.00"},
		{"Long fraction", "180.0127083333333333", "180.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round2(decimal.RequireFromString(tt.input))
			if result.StringFixed(2) != tt.expected {
				t.Errorf("Round2(%s) = %s, expected %s", tt.input, result.StringFixed(2), tt.expected)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	if got := NonNegative(decimal.RequireFromString("-5")); !got.IsZero() {
		t.Errorf("NonNegative(-5) = %s, expected 0", got)
	}
	if got := NonNegative(decimal.RequireFromString("5")); !got.Equal(decimal.RequireFromString("5")) {
		t.Errorf("NonNegative(5) = %s, expected 5", got)
	}
	if got := NonNegative(decimal.Zero); !got.IsZero() {
		t.Errorf("NonNegative(0) = %s, expected 0", got)
	}
}

func TestMax(t *testing.T) {
	a := decimal.RequireFromString("14000")
	b := decimal.RequireFromString("12250")
	if got := Max(a, b); !got.Equal(a) {
		t.Errorf("Max(%s, %s) = %s, expected %s", a, b, got, a)
	}
	if got := Max(b, a); !got.Equal(a) {
		t.Errorf("Max(%s, %s) = %s, expected %s", b, a, got, a)
	}
	if got := Max(a, a); !got.Equal(a) {
		t.Errorf("Max(%s, %s) = %s, expected %s", a, a, got, a)
	}
}
