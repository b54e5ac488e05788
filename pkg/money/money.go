// Package money provides the fixed-point amount type used across the
// ledger. Amounts are held as integer cents; JSON values convert through
// shopspring/decimal so UI-supplied numbers like 49.99 never pick up
// float drift.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents. The zero value is $0.00.
type Money int64

var hundred = decimal.NewFromInt(100)

// FromCents wraps an integer cent amount.
func FromCents(cents int64) Money {
	return Money(cents)
}

// FromFloat converts a float dollar amount, rounding half-up at the cent.
func FromFloat(f float64) Money {
	return FromDecimal(decimal.NewFromFloat(f))
}

// FromDecimal converts a decimal dollar amount, rounding half-up at the cent.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(hundred).Round(0).IntPart())
}

// Parse converts a decimal string such as "12.34" into Money.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Cents returns the raw cent amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal returns the dollar amount as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Float64 returns the dollar amount for display purposes. Use cents for
// arithmetic.
func (m Money) Float64() float64 {
	return float64(m) / 100.0
}

func (m Money) Add(other Money) Money {
	return m + other
}

func (m Money) Sub(other Money) Money {
	return m - other
}

func (m Money) Neg() Money {
	return -m
}

func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

func (m Money) IsPositive() bool {
	return m > 0
}

func (m Money) IsNegative() bool {
	return m < 0
}

func (m Money) IsZero() bool {
	return m == 0
}

// String renders the amount as "$12.34" ("-$3.00" when negative).
func (m Money) String() string {
	if m < 0 {
		return "-$" + (-m).Decimal().StringFixed(2)
	}
	return "$" + m.Decimal().StringFixed(2)
}

// MarshalJSON emits a plain JSON number with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings, rounding to
// the nearest cent.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		*m = 0
		return nil
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid money value %s: %w", data, err)
	}
	*m = FromDecimal(d)
	return nil
}
