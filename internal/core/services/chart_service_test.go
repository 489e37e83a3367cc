package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portssvc "github.com/buchwerk/buchwerk/internal/core/ports/services"
	"github.com/buchwerk/buchwerk/internal/core/services"
	"github.com/buchwerk/buchwerk/internal/dto"
)

type ChartServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.ChartSvcFacade
	companyID       string
	userID          string
	vatAccount      domain.Account
	revenueAccount  domain.Account
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	vatTable := domain.VatAccountTable{
		domain.TaxOutput: {"19": "1776", "7": "1771"},
		domain.TaxInput:  {"19": "1576", "7": "1571"},
	}
	suite.service = services.NewChartService(suite.mockAccountRepo, vatTable)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.vatAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1776",
		Name:        "Umsatzsteuer 19%",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "8400",
		Name:        "Erloese 19% USt",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (suite *ChartServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1200",
		Name:        "Bank",
		AccountType: "ASSET",
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1200").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("1200", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1776",
		Name:        "Umsatzsteuer 19%",
		AccountType: "LIABILITY",
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1776").Return(&suite.vatAccount, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestGetAccountByID_OtherCompanyHidden() {
	ctx := context.Background()
	foreign := suite.vatAccount
	foreign.CompanyID = uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(&foreign, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.companyID, foreign.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ChartServiceTestSuite) TestResolveVatAccount_ViaTable() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1776").Return(&suite.vatAccount, nil).Once()

	account, err := suite.service.ResolveVatAccount(ctx, suite.companyID, domain.TaxOutput, decimal.NewFromInt(19))

	suite.Require().NoError(err)
	suite.Equal(suite.vatAccount.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindFirstAccountByType", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestResolveVatAccount_CodeMissingFallsBack() {
	ctx := context.Background()

	// Table maps 19 -> 1776 but the chart lacks that code.
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1776").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindFirstAccountByType", ctx, suite.companyID, domain.Revenue).Return(&suite.revenueAccount, nil).Once()

	account, err := suite.service.ResolveVatAccount(ctx, suite.companyID, domain.TaxOutput, decimal.NewFromInt(19))

	suite.Require().NoError(err)
	suite.Equal(suite.revenueAccount.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestResolveVatAccount_UnmappedRateFallsBack() {
	ctx := context.Background()
	expense := domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "4980", AccountType: domain.Expense}

	// Rate 16 has no table row; input VAT defaults to the expense side.
	suite.mockAccountRepo.On("FindFirstAccountByType", ctx, suite.companyID, domain.Expense).Return(&expense, nil).Once()

	account, err := suite.service.ResolveVatAccount(ctx, suite.companyID, domain.TaxInput, decimal.NewFromInt(16))

	suite.Require().NoError(err)
	suite.Equal(expense.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestGetAccountsByIDs_MissingIDFails() {
	ctx := context.Background()
	missing := uuid.NewString()
	ids := []string{suite.vatAccount.AccountID, missing}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, ids).
		Return(map[string]domain.Account{suite.vatAccount.AccountID: suite.vatAccount}, nil).Once()

	_, err := suite.service.GetAccountsByIDs(ctx, suite.companyID, ids)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}
