package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all PostgreSQL repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool, numberPrefixes map[domain.DocumentType]string) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	contactRepo := newPgxContactRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	quoteRepo := newPgxQuoteRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	numberAllocator := newPgxDocumentNumberAllocator(dbPool, numberPrefixes)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		ContactRepo:     contactRepo,
		JournalRepo:     journalRepo,
		QuoteRepo:       quoteRepo,
		OrderRepo:       orderRepo,
		InvoiceRepo:     invoiceRepo,
		NumberAllocator: numberAllocator,
	}
}
