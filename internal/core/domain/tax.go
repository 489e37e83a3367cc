package domain

import "github.com/shopspring/decimal"

// TaxDirection distinguishes output VAT (owed on sales, credit side) from
// input VAT (reclaimable on purchases, debit side).
type TaxDirection string

const (
	TaxOutput TaxDirection = "OUTPUT"
	TaxInput  TaxDirection = "INPUT"
)

// VatAccountTable maps a tax direction and rate to a chart-of-accounts code.
// It is injected from configuration so charts (SKR03/SKR04/custom) can vary
// without code changes. Rates are keyed by their canonical decimal string
// ("19", "7", "5.5").
type VatAccountTable map[TaxDirection]map[string]string

// Code looks up the account code for a direction and rate.
func (t VatAccountTable) Code(direction TaxDirection, ratePercent decimal.Decimal) (string, bool) {
	rates, ok := t[direction]
	if !ok {
		return "", false
	}
	code, ok := rates[ratePercent.String()]
	return code, ok
}
