package services

import (
	"context"
	"time"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/dto"
)

// QuoteSvcFacade owns the quote lifecycle:
// DRAFT -> SENT -> ACCEPTED -> ORDERED, SENT -> REJECTED,
// SENT|ACCEPTED -> EXPIRED.
type QuoteSvcFacade interface {
	CreateQuote(ctx context.Context, companyID string, req dto.CreateQuoteRequest, userID string) (*domain.Quote, error)
	GetQuoteByID(ctx context.Context, companyID string, quoteID string) (*domain.Quote, error)
	ListQuotes(ctx context.Context, companyID string, limit int, offset int) ([]domain.Quote, error)

	SendQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error)
	AcceptQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error)
	RejectQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error)

	// ExpireQuote transitions a sent or accepted quote to EXPIRED once its
	// valid-until date has passed. Time is passed in, not read ambiently.
	ExpireQuote(ctx context.Context, companyID string, quoteID string, now time.Time, userID string) (*domain.Quote, error)

	// CreateOrderFromQuote is only legal from ACCEPTED; it copies the line
	// items 1:1 with delivery/invoicing counters reset.
	CreateOrderFromQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Order, error)
}

// OrderSvcFacade owns order creation and progress tracking. Order status is
// derived from per-line progress, never set directly.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, companyID string, req dto.CreateOrderRequest, userID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, companyID string, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, companyID string, limit int, offset int) ([]domain.Order, error)

	// RecordDelivery adds delivered quantities to order lines. Quantities are
	// monotonically non-decreasing and capped at the ordered quantity.
	RecordDelivery(ctx context.Context, companyID string, orderID string, req dto.RecordProgressRequest, userID string) (*domain.Order, error)

	// RecordInvoiced adds invoiced quantities to order lines, same rules.
	RecordInvoiced(ctx context.Context, companyID string, orderID string, req dto.RecordProgressRequest, userID string) (*domain.Order, error)
}

// InvoiceSvcFacade owns the invoice lifecycle:
// DRAFT -> BOOKED -> SENT -> PAID, SENT -> OVERDUE, BOOKED|SENT -> CANCELLED.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, companyID string, limit int, offset int) ([]domain.Invoice, error)

	// BookInvoice creates and posts the receivable/revenue/output-VAT journal
	// entry and freezes the invoice, atomically.
	BookInvoice(ctx context.Context, companyID string, invoiceID string, req dto.BookInvoiceRequest, userID string) (*domain.Invoice, error)

	SendInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error)

	// MarkInvoicePaid posts the payment entry (cash/bank debit, receivable
	// credit); the booking entry is never mutated.
	MarkInvoicePaid(ctx context.Context, companyID string, invoiceID string, req dto.MarkPaidRequest, userID string) (*domain.Invoice, error)

	// MarkInvoiceOverdue transitions a sent invoice past its due date.
	MarkInvoiceOverdue(ctx context.Context, companyID string, invoiceID string, now time.Time, userID string) (*domain.Invoice, error)

	// CancelInvoice cancels a booked or sent invoice and reverses its booking
	// entry.
	CancelInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error)
}
