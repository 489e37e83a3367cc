package dto

import (
	"time"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest is one position on a quote, order or invoice.
// UnitPrice is the net price in integer minor units.
type DocumentLineRequest struct {
	Description    string          `json:"description" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity" validate:"required"`
	Unit           string          `json:"unit"`
	UnitPrice      domain.Money    `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
}

// CreateQuoteRequest defines the input for creating a quote draft.
type CreateQuoteRequest struct {
	ContactID    string                `json:"contactID" validate:"required"`
	IssueDate    time.Time             `json:"issueDate" validate:"required"`
	ValidUntil   time.Time             `json:"validUntil" validate:"required"`
	CurrencyCode string                `json:"currencyCode" validate:"required,len=3"`
	Lines        []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateOrderRequest defines the input for creating an order directly,
// without an originating quote.
type CreateOrderRequest struct {
	ContactID    string                `json:"contactID" validate:"required"`
	IssueDate    time.Time             `json:"issueDate" validate:"required"`
	CurrencyCode string                `json:"currencyCode" validate:"required,len=3"`
	Lines        []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateInvoiceRequest defines the input for creating an invoice draft.
type CreateInvoiceRequest struct {
	ContactID    string                `json:"contactID" validate:"required"`
	IssueDate    time.Time             `json:"issueDate" validate:"required"`
	DueDate      time.Time             `json:"dueDate" validate:"required"`
	CurrencyCode string                `json:"currencyCode" validate:"required,len=3"`
	OrderID      *string               `json:"orderID"`
	Lines        []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// LineProgress records delivered or invoiced quantity against one order line.
type LineProgress struct {
	LineID   string          `json:"lineID" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// RecordProgressRequest advances delivery or invoicing progress on an order.
type RecordProgressRequest struct {
	Lines []LineProgress `json:"lines" validate:"required,min=1,dive"`
}

// BookInvoiceRequest names the accounts the booking entry posts to. The VAT
// account is resolved per line rate from the configured table.
type BookInvoiceRequest struct {
	RevenueAccountID string `json:"revenueAccountID" validate:"required"`
}

// MarkPaidRequest names the cash/bank account receiving the payment.
type MarkPaidRequest struct {
	PaymentAccountID string    `json:"paymentAccountID" validate:"required"`
	PaidAt           time.Time `json:"paidAt" validate:"required"`
}

// DocumentLineResponse defines the data returned for a document line.
type DocumentLineResponse struct {
	LineID            string          `json:"lineID"`
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit,omitempty"`
	UnitPrice         domain.Money    `json:"unitPrice"`
	TaxRatePercent    decimal.Decimal `json:"taxRatePercent"`
	DeliveredQuantity decimal.Decimal `json:"deliveredQuantity"`
	InvoicedQuantity  decimal.Decimal `json:"invoicedQuantity"`
}

// QuoteResponse defines the data returned for a quote.
type QuoteResponse struct {
	DocumentID     string                 `json:"documentID"`
	DocumentNumber string                 `json:"documentNumber"`
	ContactID      string                 `json:"contactID"`
	IssueDate      time.Time              `json:"issueDate"`
	ValidUntil     time.Time              `json:"validUntil"`
	Status         string                 `json:"status"`
	Subtotal       domain.Money           `json:"subtotal"`
	TaxTotal       domain.Money           `json:"taxTotal"`
	Total          domain.Money           `json:"total"`
	OrderID        *string                `json:"orderID,omitempty"`
	Lines          []DocumentLineResponse `json:"lines,omitempty"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	DocumentID     string                 `json:"documentID"`
	DocumentNumber string                 `json:"documentNumber"`
	ContactID      string                 `json:"contactID"`
	IssueDate      time.Time              `json:"issueDate"`
	Status         string                 `json:"status"`
	Subtotal       domain.Money           `json:"subtotal"`
	TaxTotal       domain.Money           `json:"taxTotal"`
	Total          domain.Money           `json:"total"`
	QuoteID        *string                `json:"quoteID,omitempty"`
	Lines          []DocumentLineResponse `json:"lines,omitempty"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	DocumentID     string                 `json:"documentID"`
	DocumentNumber string                 `json:"documentNumber"`
	ContactID      string                 `json:"contactID"`
	IssueDate      time.Time              `json:"issueDate"`
	DueDate        time.Time              `json:"dueDate"`
	Status         string                 `json:"status"`
	Subtotal       domain.Money           `json:"subtotal"`
	TaxTotal       domain.Money           `json:"taxTotal"`
	Total          domain.Money           `json:"total"`
	EntryID        *string                `json:"entryID,omitempty"`
	PaymentEntryID *string                `json:"paymentEntryID,omitempty"`
	OrderID        *string                `json:"orderID,omitempty"`
	Lines          []DocumentLineResponse `json:"lines,omitempty"`
}

func toDocumentLineResponses(lines []domain.DocumentLine) []DocumentLineResponse {
	out := make([]DocumentLineResponse, len(lines))
	for i, l := range lines {
		out[i] = DocumentLineResponse{
			LineID:            l.LineID,
			Description:       l.Description,
			Quantity:          l.Quantity,
			Unit:              l.Unit,
			UnitPrice:         l.UnitPrice,
			TaxRatePercent:    l.TaxRatePercent,
			DeliveredQuantity: l.DeliveredQuantity,
			InvoicedQuantity:  l.InvoicedQuantity,
		}
	}
	return out
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse.
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		DocumentID:     q.DocumentID,
		DocumentNumber: q.DocumentNumber,
		ContactID:      q.ContactID,
		IssueDate:      q.IssueDate,
		ValidUntil:     q.ValidUntil,
		Status:         string(q.Status),
		Subtotal:       q.Subtotal,
		TaxTotal:       q.TaxTotal,
		Total:          q.Total,
		OrderID:        q.OrderID,
		Lines:          toDocumentLineResponses(q.Lines),
	}
}

// ToOrderResponse converts a domain.Order to OrderResponse.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		DocumentID:     o.DocumentID,
		DocumentNumber: o.DocumentNumber,
		ContactID:      o.ContactID,
		IssueDate:      o.IssueDate,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal,
		TaxTotal:       o.TaxTotal,
		Total:          o.Total,
		QuoteID:        o.QuoteID,
		Lines:          toDocumentLineResponses(o.Lines),
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		DocumentID:     inv.DocumentID,
		DocumentNumber: inv.DocumentNumber,
		ContactID:      inv.ContactID,
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		Status:         string(inv.Status),
		Subtotal:       inv.Subtotal,
		TaxTotal:       inv.TaxTotal,
		Total:          inv.Total,
		EntryID:        inv.EntryID,
		PaymentEntryID: inv.PaymentEntryID,
		OrderID:        inv.OrderID,
		Lines:          toDocumentLineResponses(inv.Lines),
	}
}
