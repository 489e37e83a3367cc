package repositories

import (
	"context"

	"github.com/buchwerk/buchwerk/internal/core/domain"
)

// QuoteRepository defines persistence operations for quotes.
type QuoteRepository interface {
	// SaveQuote persists a new quote with its lines.
	SaveQuote(ctx context.Context, quote domain.Quote) error

	// FindQuoteByID retrieves a quote, with its lines, by ID.
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)

	// UpdateQuote replaces the stored quote. The expectedStatus guard makes
	// status transitions race-safe: the update only applies while the stored
	// status still matches, otherwise apperrors.ErrConflict is returned.
	UpdateQuote(ctx context.Context, quote domain.Quote, expectedStatus domain.QuoteStatus) error

	// ListQuotes retrieves a page of quotes for a company.
	ListQuotes(ctx context.Context, companyID string, limit int, offset int) ([]domain.Quote, error)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// SaveOrder persists a new order with its lines.
	SaveOrder(ctx context.Context, order domain.Order) error

	// SaveOrderFromQuote atomically persists the order and transitions the
	// originating quote to ORDERED with the order linked.
	SaveOrderFromQuote(ctx context.Context, order domain.Order, quote domain.Quote) error

	// FindOrderByID retrieves an order, with its lines, by ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// UpdateOrder replaces the stored order and its line progress counters.
	UpdateOrder(ctx context.Context, order domain.Order) error

	// ListOrders retrieves a page of orders for a company.
	ListOrders(ctx context.Context, companyID string, limit int, offset int) ([]domain.Order, error)
}

// InvoiceRepository defines persistence operations for invoices. Booking and
// payment couple a document-status change to a journal-entry insert; those
// must be atomic as a unit, which is why they are single repository calls.
type InvoiceRepository interface {
	// SaveInvoice persists a new invoice with its lines.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByID retrieves an invoice, with its lines, by ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoice replaces the stored invoice under a status guard,
	// returning apperrors.ErrConflict when the stored status changed.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedStatus domain.InvoiceStatus) error

	// BookInvoice atomically persists the booking journal entry and moves the
	// invoice DRAFT -> BOOKED. Either both succeed or neither does.
	BookInvoice(ctx context.Context, invoice domain.Invoice, entry domain.JournalEntry) error

	// MarkInvoicePaid atomically persists the payment journal entry and moves
	// the invoice to PAID.
	MarkInvoicePaid(ctx context.Context, invoice domain.Invoice, paymentEntry domain.JournalEntry) error

	// ListInvoices retrieves a page of invoices for a company.
	ListInvoices(ctx context.Context, companyID string, limit int, offset int) ([]domain.Invoice, error)
}
