package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in integer minor currency units (cents).
// Amounts never cross a boundary as floating point; the balance invariant
// on journal entries is checked with exact integer equality.
type Money int64

// Decimal returns the amount in major units as an exact decimal (cents / 100).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// MoneyFromDecimal converts a major-unit decimal with at most two fractional
// digits into minor units. It errors instead of rounding; rounding belongs to
// the VAT calculator exclusively.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than 2 decimal places", d.String())
	}
	return Money(cents.IntPart()), nil
}

// String renders the amount in major units, e.g. 11900 -> "119.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
