package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
	portssvc "github.com/buchwerk/buchwerk/internal/core/ports/services"
	"github.com/buchwerk/buchwerk/internal/dto"
	"github.com/buchwerk/buchwerk/internal/logging"
	"github.com/buchwerk/buchwerk/internal/utils/validation"
)

// chartService is the chart-of-accounts registry: account lookups by id and
// code, plus VAT account resolution from the injected rate/direction table.
type chartService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	vatTable    domain.VatAccountTable
}

// NewChartService creates a new chart-of-accounts service. The vatTable maps
// tax direction and rate to chart codes and comes from configuration.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade, vatTable domain.VatAccountTable) portssvc.ChartSvcFacade {
	return &chartService{
		accountRepo: accountRepo,
		vatTable:    vatTable,
	}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

func (s *chartService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code %s: %w", req.Code, err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: domain.AccountType(req.AccountType),
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *chartService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		// Obscure existence across companies.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *chartService) GetAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, companyID, code)
}

func (s *chartService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found || acc.CompanyID != companyID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

func (s *chartService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// ResolveVatAccount picks the VAT account for a direction and rate. The
// configured code table wins; if the code is absent or does not resolve, the
// lookup falls back to the first account of the direction's default type.
func (s *chartService) ResolveVatAccount(ctx context.Context, companyID string, direction domain.TaxDirection, ratePercent decimal.Decimal) (*domain.Account, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if code, ok := s.vatTable.Code(direction, ratePercent); ok {
		account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve VAT account code %s: %w", code, err)
		}
		logger.Warn("Configured VAT account code missing from chart, falling back to type default",
			slog.String("code", code), slog.String("direction", string(direction)))
	}

	return s.FindDefaultByType(ctx, companyID, fallbackTypeForDirection(direction))
}

func (s *chartService) FindDefaultByType(ctx context.Context, companyID string, accountType domain.AccountType) (*domain.Account, error) {
	return s.accountRepo.FindFirstAccountByType(ctx, companyID, accountType)
}

// fallbackTypeForDirection maps a tax direction to the account type used
// when no VAT code mapping exists: output tax defaults onto the revenue
// side, input tax onto the expense side.
func fallbackTypeForDirection(direction domain.TaxDirection) domain.AccountType {
	if direction == domain.TaxInput {
		return domain.Expense
	}
	return domain.Revenue
}
