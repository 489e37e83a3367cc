package services

import (
	"context"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/dto"
	"github.com/shopspring/decimal"
)

// ChartReaderSvc defines read operations on the chart of accounts.
type ChartReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart code.
	GetAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts, keyed by ID. Every
	// requested ID must resolve within the company or ErrNotFound is returned.
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts for a company.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)
}

// ChartWriterSvc defines administrative write operations.
type ChartWriterSvc interface {
	// CreateAccount persists a new account in the chart.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// VatAccountResolverSvc resolves the VAT account for a transaction from the
// injected rate-and-direction table, falling back to a type-based default.
type VatAccountResolverSvc interface {
	// ResolveVatAccount returns the account to book VAT against for the given
	// direction and rate. Never called for rate zero.
	ResolveVatAccount(ctx context.Context, companyID string, direction domain.TaxDirection, ratePercent decimal.Decimal) (*domain.Account, error)

	// FindDefaultByType returns the fallback account of the given type.
	FindDefaultByType(ctx context.Context, companyID string, accountType domain.AccountType) (*domain.Account, error)
}

// ChartSvcFacade combines all chart-of-accounts service interfaces.
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
	VatAccountResolverSvc
}
