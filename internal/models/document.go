package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLine represents one position row of a quote, order or invoice.
// Unit prices and totals are integer minor units; quantities stay decimal.
type DocumentLine struct {
	LineID            string          `db:"line_id"`
	DocumentID        string          `db:"document_id"`
	Position          int             `db:"position"`
	Description       string          `db:"description"`
	Quantity          decimal.Decimal `db:"quantity"`
	Unit              string          `db:"unit"`
	UnitPrice         int64           `db:"unit_price"`
	TaxRatePercent    decimal.Decimal `db:"tax_rate_percent"`
	DeliveredQuantity decimal.Decimal `db:"delivered_quantity"`
	InvoicedQuantity  decimal.Decimal `db:"invoiced_quantity"`
}

// Quote represents a quote header row.
type Quote struct {
	DocumentID     string    `db:"document_id"`
	CompanyID      string    `db:"company_id"`
	DocumentNumber string    `db:"document_number"`
	ContactID      string    `db:"contact_id"`
	IssueDate      time.Time `db:"issue_date"`
	CurrencyCode   string    `db:"currency_code"`
	Status         string    `db:"status"`
	ValidUntil     time.Time `db:"valid_until"`
	OrderID        *string   `db:"order_id"`
	Subtotal       int64     `db:"subtotal"`
	TaxTotal       int64     `db:"tax_total"`
	Total          int64     `db:"total"`
	AuditFields
}

// Order represents an order header row.
type Order struct {
	DocumentID     string    `db:"document_id"`
	CompanyID      string    `db:"company_id"`
	DocumentNumber string    `db:"document_number"`
	ContactID      string    `db:"contact_id"`
	IssueDate      time.Time `db:"issue_date"`
	CurrencyCode   string    `db:"currency_code"`
	Status         string    `db:"status"`
	QuoteID        *string   `db:"quote_id"`
	Subtotal       int64     `db:"subtotal"`
	TaxTotal       int64     `db:"tax_total"`
	Total          int64     `db:"total"`
	AuditFields
}

// Invoice represents an invoice header row.
type Invoice struct {
	DocumentID     string     `db:"document_id"`
	CompanyID      string     `db:"company_id"`
	DocumentNumber string     `db:"document_number"`
	ContactID      string     `db:"contact_id"`
	IssueDate      time.Time  `db:"issue_date"`
	CurrencyCode   string     `db:"currency_code"`
	Status         string     `db:"status"`
	DueDate        time.Time  `db:"due_date"`
	BookedAt       *time.Time `db:"booked_at"`
	EntryID        *string    `db:"entry_id"`
	PaymentEntryID *string    `db:"payment_entry_id"`
	OrderID        *string    `db:"order_id"`
	Subtotal       int64      `db:"subtotal"`
	TaxTotal       int64      `db:"tax_total"`
	Total          int64      `db:"total"`
	AuditFields
}
