package dto

import (
	"time"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuickEntryRequest is the compact operator intent the quick-entry engine
// expands into a journal entry draft. GrossAmount is in integer minor units;
// PaymentAccountID is required iff IsPaid is set.
type QuickEntryRequest struct {
	Date             time.Time       `json:"date" validate:"required"`
	Description      string          `json:"description" validate:"required"`
	CurrencyCode     string          `json:"currencyCode" validate:"required,len=3"`
	ContactID        string          `json:"contactID"`
	ContraAccountID  string          `json:"contraAccountID"`
	VatRatePercent   decimal.Decimal `json:"vatRatePercent"`
	GrossAmount      domain.Money    `json:"grossAmount"`
	IsPaid           bool            `json:"isPaid"`
	PaymentAccountID *string         `json:"paymentAccountID"`
}
