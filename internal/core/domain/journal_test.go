package domain_test

import (
	"testing"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalEntry_Totals(t *testing.T) {
	tests := []struct {
		name       string
		lines      []domain.JournalLine
		wantDebit  domain.Money
		wantCredit domain.Money
	}{
		{
			name:       "empty entry",
			lines:      nil,
			wantDebit:  0,
			wantCredit: 0,
		},
		{
			name: "balanced sale with VAT",
			lines: []domain.JournalLine{
				{AccountID: "a-recv", Side: domain.Debit, Amount: 11900},
				{AccountID: "a-rev", Side: domain.Credit, Amount: 10000},
				{AccountID: "a-vat", Side: domain.Credit, Amount: 1900},
			},
			wantDebit:  11900,
			wantCredit: 11900,
		},
		{
			name: "unbalanced draft",
			lines: []domain.JournalLine{
				{AccountID: "a-1", Side: domain.Debit, Amount: 10000},
				{AccountID: "a-2", Side: domain.Credit, Amount: 5000},
			},
			wantDebit:  10000,
			wantCredit: 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{Lines: tt.lines}
			assert.Equal(t, tt.wantDebit, entry.DebitTotal())
			assert.Equal(t, tt.wantCredit, entry.CreditTotal())
		})
	}
}

func TestEntrySide_Flip(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Flip())
	assert.Equal(t, domain.Debit, domain.Credit.Flip())
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		amount domain.Money
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{11900, "119.00"},
		{-1234, "-12.34"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.amount.String())
	}
}

func TestMoneyFromDecimal(t *testing.T) {
	m, err := domain.MoneyFromDecimal(decimal.RequireFromString("119.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(11900), m)

	_, err = domain.MoneyFromDecimal(decimal.RequireFromString("1.005"))
	assert.Error(t, err)
}

func TestDeriveOrderStatus(t *testing.T) {
	qty := decimal.NewFromInt(10)
	half := decimal.NewFromInt(5)
	line := func(delivered, invoiced decimal.Decimal) domain.DocumentLine {
		return domain.DocumentLine{Quantity: qty, DeliveredQuantity: delivered, InvoicedQuantity: invoiced}
	}

	tests := []struct {
		name  string
		lines []domain.DocumentLine
		want  domain.OrderStatus
	}{
		{"no lines", nil, domain.OrderOpen},
		{"nothing done", []domain.DocumentLine{line(decimal.Zero, decimal.Zero)}, domain.OrderOpen},
		{"partially delivered", []domain.DocumentLine{line(half, decimal.Zero)}, domain.OrderPartialDelivered},
		{"fully delivered", []domain.DocumentLine{line(qty, decimal.Zero)}, domain.OrderDelivered},
		{"partially invoiced", []domain.DocumentLine{line(qty, half)}, domain.OrderPartialInvoiced},
		{"invoiced before delivery", []domain.DocumentLine{line(decimal.Zero, qty)}, domain.OrderInvoiced},
		{"completed", []domain.DocumentLine{line(qty, qty)}, domain.OrderCompleted},
		{
			"mixed lines stay partial",
			[]domain.DocumentLine{line(qty, qty), line(decimal.Zero, decimal.Zero)},
			domain.OrderPartialInvoiced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DeriveOrderStatus(tt.lines))
		})
	}
}
