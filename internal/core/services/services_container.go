package services

import (
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
	portssvc "github.com/buchwerk/buchwerk/internal/core/ports/services"
	"github.com/buchwerk/buchwerk/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Chart first since most services resolve accounts through it.
	container.Chart = NewChartService(repos.AccountRepo, cfg.VatAccountTable())
	container.Contact = NewContactService(repos.ContactRepo, container.Chart)

	container.Journal = NewJournalService(repos.JournalRepo, container.Chart)
	container.QuickEntry = NewQuickEntryService(container.Contact, container.Chart, repos.JournalRepo)

	container.Quote = NewQuoteService(repos.QuoteRepo, repos.OrderRepo, repos.NumberAllocator, container.Contact)
	container.Order = NewOrderService(repos.OrderRepo, repos.NumberAllocator, container.Contact)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.NumberAllocator, container.Contact, container.Chart, container.Journal)

	return container
}
