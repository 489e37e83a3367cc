package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distinguishes the sales document workflows. It keys the
// per-type number sequences.
type DocumentType string

const (
	DocQuote   DocumentType = "QUOTE"
	DocOrder   DocumentType = "ORDER"
	DocInvoice DocumentType = "INVOICE"
)

// QuoteStatus lifecycle: DRAFT -> SENT -> ACCEPTED -> ORDERED,
// with SENT -> REJECTED and SENT|ACCEPTED -> EXPIRED.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "DRAFT"
	QuoteSent     QuoteStatus = "SENT"
	QuoteAccepted QuoteStatus = "ACCEPTED"
	QuoteRejected QuoteStatus = "REJECTED"
	QuoteExpired  QuoteStatus = "EXPIRED"
	QuoteOrdered  QuoteStatus = "ORDERED"
)

// OrderStatus is derived from per-line delivery and invoicing progress,
// never set directly by the caller.
type OrderStatus string

const (
	OrderOpen             OrderStatus = "OPEN"
	OrderPartialDelivered OrderStatus = "PARTIAL_DELIVERED"
	OrderDelivered        OrderStatus = "DELIVERED"
	OrderPartialInvoiced  OrderStatus = "PARTIAL_INVOICED"
	OrderInvoiced         OrderStatus = "INVOICED"
	OrderCompleted        OrderStatus = "COMPLETED"
)

// InvoiceStatus lifecycle: DRAFT -> BOOKED -> SENT -> PAID,
// with SENT -> OVERDUE and BOOKED|SENT -> CANCELLED.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceBooked    InvoiceStatus = "BOOKED"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// DocumentLine is one position on a quote, order or invoice. Unit prices are
// net minor units; quantity may be fractional (hours, kilograms).
// DeliveredQuantity/InvoicedQuantity are only maintained on order lines and
// are monotonically non-decreasing, never exceeding Quantity.
type DocumentLine struct {
	LineID            string          `json:"lineID"` // Primary key (UUID)
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`           // e.g. "Stk", "h"
	UnitPrice         Money           `json:"unitPrice"`      // Net, minor units
	TaxRatePercent    decimal.Decimal `json:"taxRatePercent"` // e.g. 19, 7, 0
	DeliveredQuantity decimal.Decimal `json:"deliveredQuantity"`
	InvoicedQuantity  decimal.Decimal `json:"invoicedQuantity"`
}

// DocumentCore is the shared shape of all sales documents. Totals are
// computed by the owning service as sums of per-line rounded amounts, never
// by re-deriving VAT from a blended rate.
type DocumentCore struct {
	DocumentID     string         `json:"documentID"`     // Primary key (UUID)
	CompanyID      string         `json:"companyID"`      // Owning company (tenant)
	DocumentNumber string         `json:"documentNumber"` // Allocator-assigned, unique per type
	ContactID      string         `json:"contactID"`
	IssueDate      time.Time      `json:"issueDate"`
	CurrencyCode   string         `json:"currencyCode"`
	Lines          []DocumentLine `json:"lines"`
	Subtotal       Money          `json:"subtotal"` // Sum of line nets
	TaxTotal       Money          `json:"taxTotal"` // Sum of line taxes
	Total          Money          `json:"total"`    // Subtotal + TaxTotal
	AuditFields
}

// Quote is an offer to a customer.
type Quote struct {
	DocumentCore
	Status     QuoteStatus `json:"status"`
	ValidUntil time.Time   `json:"validUntil"`
	OrderID    *string     `json:"orderID"` // Set once the quote is ordered
}

// Order tracks delivery and invoicing progress against ordered quantities.
type Order struct {
	DocumentCore
	Status  OrderStatus `json:"status"`
	QuoteID *string     `json:"quoteID"` // Originating quote, if any
}

// Invoice is the billing document; booking it creates the receivable
// journal entry and freezes the lines.
type Invoice struct {
	DocumentCore
	Status         InvoiceStatus `json:"status"`
	DueDate        time.Time     `json:"dueDate"`
	BookedAt       *time.Time    `json:"bookedAt"`
	EntryID        *string       `json:"entryID"`        // Booking journal entry
	PaymentEntryID *string       `json:"paymentEntryID"` // Payment journal entry
	OrderID        *string       `json:"orderID"`        // Originating order, if any
}

// DeriveOrderStatus computes the order status from line progress.
func DeriveOrderStatus(lines []DocumentLine) OrderStatus {
	if len(lines) == 0 {
		return OrderOpen
	}
	anyDelivered, allDelivered := false, true
	anyInvoiced, allInvoiced := false, true
	for _, l := range lines {
		if l.DeliveredQuantity.IsPositive() {
			anyDelivered = true
		}
		if l.DeliveredQuantity.LessThan(l.Quantity) {
			allDelivered = false
		}
		if l.InvoicedQuantity.IsPositive() {
			anyInvoiced = true
		}
		if l.InvoicedQuantity.LessThan(l.Quantity) {
			allInvoiced = false
		}
	}
	switch {
	case allDelivered && allInvoiced:
		return OrderCompleted
	case allInvoiced:
		return OrderInvoiced
	case anyInvoiced:
		return OrderPartialInvoiced
	case allDelivered:
		return OrderDelivered
	case anyDelivered:
		return OrderPartialDelivered
	default:
		return OrderOpen
	}
}
