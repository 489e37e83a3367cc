package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	ContactRepo     ContactRepositoryFacade
	JournalRepo     JournalRepositoryFacade
	QuoteRepo       QuoteRepository
	OrderRepo       OrderRepository
	InvoiceRepo     InvoiceRepository
	NumberAllocator DocumentNumberAllocator
}
