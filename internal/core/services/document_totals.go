package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/dto"
	"github.com/buchwerk/buchwerk/internal/utils/vat"
)

// buildDocumentLines converts request lines to domain lines and computes the
// document totals as sums of per-line rounded amounts. A mixed-rate document
// therefore carries exactly the tax its lines carry, never a re-derived
// blended figure.
func buildDocumentLines(reqLines []dto.DocumentLineRequest) ([]domain.DocumentLine, domain.Money, domain.Money, domain.Money, error) {
	lines := make([]domain.DocumentLine, 0, len(reqLines))
	var subtotal, taxTotal domain.Money
	for i, rl := range reqLines {
		if !rl.Quantity.IsPositive() {
			return nil, 0, 0, 0, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if rl.UnitPrice < 0 {
			return nil, 0, 0, 0, fmt.Errorf("%w: line %d unit price must not be negative", apperrors.ErrValidation, i+1)
		}
		amounts, err := vat.LineTotal(rl.Quantity, rl.UnitPrice, rl.TaxRatePercent)
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, i+1, err)
		}
		lines = append(lines, domain.DocumentLine{
			LineID:            uuid.NewString(),
			Description:       rl.Description,
			Quantity:          rl.Quantity,
			Unit:              rl.Unit,
			UnitPrice:         rl.UnitPrice,
			TaxRatePercent:    rl.TaxRatePercent,
			DeliveredQuantity: decimal.Zero,
			InvoicedQuantity:  decimal.Zero,
		})
		subtotal += amounts.Net
		taxTotal += amounts.Tax
	}
	return lines, subtotal, taxTotal, subtotal + taxTotal, nil
}

// taxByRate groups the per-line tax amounts of a document by distinct rate,
// preserving first-seen rate order. Zero-tax groups are dropped.
func taxByRate(lines []domain.DocumentLine) ([]decimal.Decimal, map[string]domain.Money, error) {
	order := make([]decimal.Decimal, 0, 2)
	byRate := make(map[string]domain.Money)
	for _, l := range lines {
		amounts, err := vat.LineTotal(l.Quantity, l.UnitPrice, l.TaxRatePercent)
		if err != nil {
			return nil, nil, err
		}
		if amounts.Tax == 0 {
			continue
		}
		key := l.TaxRatePercent.String()
		if _, seen := byRate[key]; !seen {
			order = append(order, l.TaxRatePercent)
		}
		byRate[key] += amounts.Tax
	}
	return order, byRate, nil
}
