package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates an amount string that is empty, non-numeric or
// out of the representable range.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is a signed monetary quantity in cents. Arithmetic on cents keeps
// balance folds exact; decimals only appear at the parsing and formatting
// edges.
type Money struct {
	Cents int64
}

// FromCents wraps a raw cent count.
func FromCents(cents int64) Money {
	return Money{Cents: cents}
}

// Parse converts a decimal string such as "5.00" or "-2.50" into Money.
// Both dot and comma decimal separators are accepted. Anything beyond two
// fractional digits is rounded half away from zero. The empty string and
// non-numeric input fail with ErrInvalidAmount.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}

	cents := d.Shift(2).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Decimal returns the exact decimal value (dollars with two fractional digits).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount as a plain decimal, e.g. "5.00" or "-2.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Format renders the amount with a currency symbol, e.g. "$5.00" or "-$2.50".
func (m Money) Format() string {
	if m.Cents < 0 {
		return fmt.Sprintf("-$%s", Money{Cents: -m.Cents}.Decimal().StringFixed(2))
	}
	return fmt.Sprintf("$%s", m.Decimal().StringFixed(2))
}

// IsPositive reports the sign classification used for display: zero counts
// as positive, matching how a zero-amount memo entry is rendered.
func (m Money) IsPositive() bool {
	return m.Cents >= 0
}

// Abs returns the magnitude in cents.
func (m Money) Abs() int64 {
	if m.Cents < 0 {
		return -m.Cents
	}
	return m.Cents
}

// Add returns the exact sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}
