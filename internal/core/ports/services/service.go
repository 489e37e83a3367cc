package services

// ServiceContainer bundles all service facades for injection into callers
// (CLI today, an API layer externally).
type ServiceContainer struct {
	Chart      ChartSvcFacade
	Contact    ContactSvcFacade
	Journal    JournalSvcFacade
	QuickEntry QuickEntrySvcFacade
	Quote      QuoteSvcFacade
	Order      OrderSvcFacade
	Invoice    InvoiceSvcFacade
}
