package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portssvc "github.com/buchwerk/buchwerk/internal/core/ports/services"
	"github.com/buchwerk/buchwerk/internal/core/services"
	"github.com/buchwerk/buchwerk/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockChartSvc    *MockChartService
	service         portssvc.JournalSvcFacade
	companyID       string
	userID          string
	bankAccount     domain.Account
	revenueAccount  domain.Account
	vatAccount      domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockChartSvc = new(MockChartService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockChartSvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.bankAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1200",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "8400",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.vatAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1776",
		AccountType: domain.Liability,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

func (suite *JournalServiceTestSuite) balancedEntry() domain.JournalEntry {
	entryID := uuid.NewString()
	return domain.JournalEntry{
		EntryID:      entryID,
		CompanyID:    suite.companyID,
		EntryDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Description:  "Sale of services",
		CurrencyCode: "EUR",
		Status:       domain.EntryDraft,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.bankAccount.AccountID, Side: domain.Debit, Amount: 11900},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: 10000},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.vatAccount.AccountID, Side: domain.Credit, Amount: 1900},
		},
	}
}

// --- ValidateEntry ---

func (suite *JournalServiceTestSuite) TestValidateEntry_Balanced() {
	ctx := context.Background()
	entry := suite.balancedEntry()

	suite.mockChartSvc.On("GetAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.bankAccount, suite.revenueAccount, suite.vatAccount), nil).Once()

	err := suite.service.ValidateEntry(ctx, suite.companyID, entry)

	suite.Require().NoError(err)
	suite.mockChartSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestValidateEntry_Unbalanced() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Lines[0].Amount = 12000 // debit 12000 vs credit 11900

	err := suite.service.ValidateEntry(ctx, suite.companyID, entry)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockChartSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestValidateEntry_TooFewLines() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Lines = entry.Lines[:1]

	err := suite.service.ValidateEntry(ctx, suite.companyID, entry)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTooFewLines)
}

func (suite *JournalServiceTestSuite) TestValidateEntry_NonPositiveAmount() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Lines[2].Amount = 0

	err := suite.service.ValidateEntry(ctx, suite.companyID, entry)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNonPositiveAmount)
}

func (suite *JournalServiceTestSuite) TestValidateEntry_DanglingAccount() {
	ctx := context.Background()
	entry := suite.balancedEntry()

	suite.mockChartSvc.On("GetAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ValidateEntry(ctx, suite.companyID, entry)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDanglingAccount)
	suite.mockChartSvc.AssertExpectations(suite.T())
}

// --- CreateEntry ---

func (suite *JournalServiceTestSuite) TestCreateEntry_UnbalancedDraftAllowed() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Date:         time.Now(),
		Description:  "Half-finished capture",
		CurrencyCode: "EUR",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.bankAccount.AccountID, Side: "DEBIT", Amount: 5000},
		},
	}

	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.Len(entry.Lines, 1)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- UpdateDraftEntry ---

func (suite *JournalServiceTestSuite) TestUpdateDraftEntry_PostedIsImmutable() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Status = domain.EntryPosted

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	desc := "should never land"
	_, err := suite.service.UpdateDraftEntry(ctx, suite.companyID, entry.EntryID, dto.UpdateEntryRequest{Description: &desc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryImmutable)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateDraftEntry", mock.Anything, mock.Anything)
}

// --- PostEntry ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entry := suite.balancedEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockChartSvc.On("GetAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.bankAccount, suite.revenueAccount, suite.vatAccount), nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, entry.EntryID, mock.AnythingOfType("time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, posted.Status)
	suite.Require().NotNil(posted.LockedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_UnbalancedRejected() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Lines = entry.Lines[:2] // drop the VAT line, debit 11900 vs credit 10000

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Status = domain.EntryPosted

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyLocked)
}

func (suite *JournalServiceTestSuite) TestPostEntry_LockRace() {
	ctx := context.Background()
	entry := suite.balancedEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockChartSvc.On("GetAccountsByIDs", ctx, suite.companyID, mock.Anything).
		Return(suite.accountsMap(suite.bankAccount, suite.revenueAccount, suite.vatAccount), nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, entry.EntryID, mock.AnythingOfType("time.Time"), suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyLocked)
}

// --- ReverseEntry ---

func (suite *JournalServiceTestSuite) TestReverseEntry_FlipsEverySide() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Status = domain.EntryPosted

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), entry.EntryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.EntryPosted, reversal.Status)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(entry.EntryID, *reversal.OriginalEntryID)
	suite.Equal(entry.EntryDate, reversal.EntryDate)
	suite.Require().Len(reversal.Lines, len(entry.Lines))
	for i, line := range reversal.Lines {
		suite.Equal(entry.Lines[i].AccountID, line.AccountID)
		suite.Equal(entry.Lines[i].Amount, line.Amount)
		suite.Equal(entry.Lines[i].Side.Flip(), line.Side)
	}
	suite.Equal(entry.DebitTotal(), reversal.DebitTotal())
	suite.Equal(reversal.DebitTotal(), reversal.CreditTotal())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftRejected() {
	ctx := context.Background()
	entry := suite.balancedEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_SecondReversalRejected() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Status = domain.EntryCancelled

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyCancelled)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ReversalOfReversalRejected() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.Status = domain.EntryPosted
	originalID := uuid.NewString()
	entry.OriginalEntryID = &originalID

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- Company scoping ---

func (suite *JournalServiceTestSuite) TestGetEntryByID_OtherCompanyHidden() {
	ctx := context.Background()
	entry := suite.balancedEntry()
	entry.CompanyID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.companyID, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
