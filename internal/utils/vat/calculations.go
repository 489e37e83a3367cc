package vat

import (
	"fmt"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// This package is the single authoritative rounding point in the system.
// Every amount that leaves it is an integer minor-unit value; no other
// component re-rounds a value that passed through here.

// Breakdown is the result of splitting a gross amount into net and tax.
// Invariant: Net + Tax == Gross, exactly.
type Breakdown struct {
	Gross domain.Money `json:"gross"`
	Net   domain.Money `json:"net"`
	Tax   domain.Money `json:"tax"`
}

// LineAmounts is the result of totalling a single document line.
// Invariant: Net + Tax == Gross, exactly.
type LineAmounts struct {
	Net   domain.Money `json:"net"`
	Tax   domain.Money `json:"tax"`
	Gross domain.Money `json:"gross"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeVat splits a gross amount into net and tax for the given VAT rate.
// Net is rounded half-up to the minor unit and tax derived as gross minus
// net, so the additive invariant holds under any rate. Tax is never computed
// independently of net.
func ComputeVat(gross domain.Money, ratePercent decimal.Decimal) (Breakdown, error) {
	if gross < 0 {
		return Breakdown{}, fmt.Errorf("gross amount must not be negative, got %s", gross)
	}
	if err := validateRate(ratePercent); err != nil {
		return Breakdown{}, err
	}
	if ratePercent.IsZero() {
		return Breakdown{Gross: gross, Net: gross, Tax: 0}, nil
	}

	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(oneHundred))
	net := domain.Money(decimal.NewFromInt(int64(gross)).Div(divisor).Round(0).IntPart())
	return Breakdown{
		Gross: gross,
		Net:   net,
		Tax:   gross - net,
	}, nil
}

// LineTotal computes the amounts of a single document line from quantity and
// net unit price. The net is rounded once, the gross derived from the
// rounded net, and tax as the difference. Document totals are sums of
// rounded lines, not a rounded sum.
func LineTotal(quantity decimal.Decimal, unitPriceNet domain.Money, ratePercent decimal.Decimal) (LineAmounts, error) {
	if quantity.IsNegative() {
		return LineAmounts{}, fmt.Errorf("quantity must not be negative, got %s", quantity)
	}
	if err := validateRate(ratePercent); err != nil {
		return LineAmounts{}, err
	}

	net := domain.Money(quantity.Mul(decimal.NewFromInt(int64(unitPriceNet))).Round(0).IntPart())
	gross := net
	if !ratePercent.IsZero() {
		factor := decimal.NewFromInt(1).Add(ratePercent.Div(oneHundred))
		gross = domain.Money(decimal.NewFromInt(int64(net)).Mul(factor).Round(0).IntPart())
	}
	return LineAmounts{
		Net:   net,
		Tax:   gross - net,
		Gross: gross,
	}, nil
}

func validateRate(ratePercent decimal.Decimal) error {
	if ratePercent.IsNegative() || ratePercent.GreaterThanOrEqual(oneHundred) {
		return fmt.Errorf("vat rate must be in [0, 100), got %s", ratePercent)
	}
	return nil
}
