package vat_test

import (
	"testing"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/utils/vat"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeVat(t *testing.T) {
	tests := []struct {
		name    string
		gross   domain.Money
		rate    string
		wantNet domain.Money
		wantTax domain.Money
	}{
		{"standard rate 19", 11900, "19", 10000, 1900},
		{"reduced rate 7", 10700, "7", 10000, 700},
		{"zero rate passes through", 11900, "0", 11900, 0},
		{"zero gross", 0, "19", 0, 0},
		{"one cent at 19", 1, "19", 1, 0},
		{"rounding half up", 100, "19", 84, 16}, // 100/1.19 = 84.0336...
		{"odd gross at 7", 999, "7", 934, 65},   // 999/1.07 = 933.64...
		{"historic rate 16", 11600, "16", 10000, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vat.ComputeVat(tt.gross, rate(tt.rate))
			require.NoError(t, err)
			assert.Equal(t, tt.gross, got.Gross)
			assert.Equal(t, tt.wantNet, got.Net)
			assert.Equal(t, tt.wantTax, got.Tax)
			// The additive invariant must hold exactly, always.
			assert.Equal(t, got.Gross, got.Net+got.Tax)
		})
	}
}

func TestComputeVat_AdditiveInvariantSweep(t *testing.T) {
	rates := []string{"0", "5", "7", "16", "19", "19.5", "99.9"}
	for _, r := range rates {
		for gross := domain.Money(0); gross <= 250; gross++ {
			got, err := vat.ComputeVat(gross, rate(r))
			require.NoError(t, err)
			assert.Equal(t, gross, got.Net+got.Tax, "rate %s gross %d", r, gross)
			assert.GreaterOrEqual(t, got.Tax, domain.Money(0))
		}
	}
}

func TestComputeVat_Rejections(t *testing.T) {
	_, err := vat.ComputeVat(-1, rate("19"))
	assert.Error(t, err)

	_, err = vat.ComputeVat(100, rate("-1"))
	assert.Error(t, err)

	_, err = vat.ComputeVat(100, rate("100"))
	assert.Error(t, err)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		qty       string
		unitPrice domain.Money
		rate      string
		wantNet   domain.Money
		wantTax   domain.Money
		wantGross domain.Money
	}{
		{"single unit at 19", "1", 10000, "19", 10000, 1900, 11900},
		{"three units at 7", "3", 500, "7", 1500, 105, 1605},
		{"fractional quantity", "2.5", 999, "19", 2498, 475, 2973}, // 2497.5 rounds half up
		{"zero rate", "4", 250, "0", 1000, 0, 1000},
		{"zero quantity", "0", 10000, "19", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vat.LineTotal(rate(tt.qty), tt.unitPrice, rate(tt.rate))
			require.NoError(t, err)
			assert.Equal(t, tt.wantNet, got.Net)
			assert.Equal(t, tt.wantTax, got.Tax)
			assert.Equal(t, tt.wantGross, got.Gross)
			assert.Equal(t, got.Gross, got.Net+got.Tax)
		})
	}
}

func TestLineTotal_SumOfRoundedLines(t *testing.T) {
	// Three lines of 0.03 net at 19%: each line carries 0.01 tax, so the
	// document totals 0.03 tax. Splitting the summed gross instead would
	// yield 0.02. Sum-of-rounded-lines is the deliberate policy.
	line, err := vat.LineTotal(decimal.NewFromInt(1), 3, rate("19"))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(1), line.Tax)

	var taxTotal domain.Money
	for i := 0; i < 3; i++ {
		taxTotal += line.Tax
	}
	assert.Equal(t, domain.Money(3), taxTotal)

	blended, err := vat.ComputeVat(9+3, rate("19")) // what a rounded-sum would look like
	require.NoError(t, err)
	assert.NotEqual(t, blended.Tax, taxTotal)
}

func TestLineTotal_Rejections(t *testing.T) {
	_, err := vat.LineTotal(rate("-1"), 100, rate("19"))
	assert.Error(t, err)

	_, err = vat.LineTotal(rate("1"), 100, rate("101"))
	assert.Error(t, err)
}
