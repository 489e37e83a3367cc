package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
	portssvc "github.com/buchwerk/buchwerk/internal/core/ports/services"
	"github.com/buchwerk/buchwerk/internal/dto"
	"github.com/buchwerk/buchwerk/internal/logging"
	"github.com/buchwerk/buchwerk/internal/utils/validation"
	"github.com/buchwerk/buchwerk/internal/utils/vat"
)

var (
	// ErrMissingContact is returned when the intent names no contact.
	ErrMissingContact = errors.New("quick entry requires a contact")
	// ErrMissingContraAccount is returned when the intent names no contra account.
	ErrMissingContraAccount = errors.New("quick entry requires a contra account")
	// ErrMissingGrossAmount is returned for a zero or negative gross amount.
	ErrMissingGrossAmount = errors.New("quick entry requires a positive gross amount")
	// ErrMissingPaymentAccount is returned when isPaid is set without a payment account.
	ErrMissingPaymentAccount = errors.New("paid quick entry requires a payment account")
	// ErrMissingContactAccount is returned when no receivable/payable account
	// resolves for the contact. Not raised for OTHER contacts, which get no
	// automatic contact line by design.
	ErrMissingContactAccount = errors.New("no ledger account resolves for contact")
)

// TransactionRole classifies a quick entry from the operator's point of view.
type TransactionRole string

const (
	RoleSale     TransactionRole = "SALE"
	RolePurchase TransactionRole = "PURCHASE"
	// RoleNeutral is the OTHER-contact case: no contact line is generated
	// and the operator completes the entry manually.
	RoleNeutral TransactionRole = "NEUTRAL"
)

// ClassifyTransaction derives the transaction role from the contact kind and
// the contra account's type. BOTH-kind contacts are disambiguated by the
// contra account: revenue means sale, expense means purchase. This is a
// heuristic over the operator's account choice, kept as an explicit function
// so it stays testable and overridable.
func ClassifyTransaction(kind domain.ContactKind, contraType domain.AccountType) (TransactionRole, error) {
	switch kind {
	case domain.ContactCustomer:
		return RoleSale, nil
	case domain.ContactVendor:
		return RolePurchase, nil
	case domain.ContactBoth:
		switch contraType {
		case domain.Revenue:
			return RoleSale, nil
		case domain.Expense:
			return RolePurchase, nil
		}
		return "", fmt.Errorf("%w: contra account type %s cannot disambiguate a BOTH contact", apperrors.ErrValidation, contraType)
	case domain.ContactOther:
		return RoleNeutral, nil
	}
	return "", fmt.Errorf("%w: unknown contact kind %s", apperrors.ErrValidation, kind)
}

// quickEntryPlan holds the fully resolved inputs of the line builder.
// ContactAccountID is empty for neutral entries.
type quickEntryPlan struct {
	Role             TransactionRole
	ContactAccountID string
	ContraAccountID  string
	VatAccountID     string // empty when no tax line is wanted
	PaymentAccountID string // empty when unpaid
	Amounts          vat.Breakdown

	// neutralContraType steers the line sides for neutral entries, which
	// have no contact account to anchor them.
	neutralContraType domain.AccountType
}

// neutralSides orients a neutral entry by its contra account: revenue books
// like a sale, expense like a purchase.
func (p quickEntryPlan) neutralSides() (contactSide, contraSide domain.EntrySide) {
	if p.neutralContraType == domain.Expense {
		return domain.Credit, domain.Debit
	}
	return domain.Debit, domain.Credit
}

// BuildQuickEntryLines is the pure core of the generator: it maps a resolved
// plan to the journal lines, with no conditional mutation along the way.
//
// Unpaid: contact line over gross, contra line over net on the opposite
// side, tax line next to the contra. Paid adds a payment line and a second
// contact line that immediately clears the gross again, preserving the
// notional invoice step in the audit trail. Neutral plans omit both contact
// lines.
func BuildQuickEntryLines(entryID string, plan quickEntryPlan) []domain.JournalLine {
	contactSide, contraSide := domain.Debit, domain.Credit
	if plan.Role == RolePurchase {
		contactSide, contraSide = domain.Credit, domain.Debit
	}
	if plan.Role == RoleNeutral {
		// No contact account to anchor the sides; orient by the contra type.
		contactSide, contraSide = plan.neutralSides()
	}

	newLine := func(accountID string, side domain.EntrySide, amount domain.Money) domain.JournalLine {
		return domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: accountID,
			Side:      side,
			Amount:    amount,
		}
	}

	lines := make([]domain.JournalLine, 0, 5)
	if plan.ContactAccountID != "" {
		lines = append(lines, newLine(plan.ContactAccountID, contactSide, plan.Amounts.Gross))
	}
	lines = append(lines, newLine(plan.ContraAccountID, contraSide, plan.Amounts.Net))
	if plan.VatAccountID != "" && plan.Amounts.Tax > 0 {
		lines = append(lines, newLine(plan.VatAccountID, contraSide, plan.Amounts.Tax))
	}
	if plan.PaymentAccountID != "" {
		lines = append(lines, newLine(plan.PaymentAccountID, contactSide, plan.Amounts.Gross))
		if plan.ContactAccountID != "" {
			lines = append(lines, newLine(plan.ContactAccountID, contraSide, plan.Amounts.Gross))
		}
	}
	return lines
}

type quickEntryService struct {
	contactSvc  portssvc.ContactSvcFacade
	chartSvc    portssvc.ChartSvcFacade
	journalRepo portsrepo.JournalWriter
}

// NewQuickEntryService creates a new quick-entry service.
func NewQuickEntryService(contactSvc portssvc.ContactSvcFacade, chartSvc portssvc.ChartSvcFacade, journalRepo portsrepo.JournalWriter) portssvc.QuickEntrySvcFacade {
	return &quickEntryService{
		contactSvc:  contactSvc,
		chartSvc:    chartSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.QuickEntrySvcFacade = (*quickEntryService)(nil)

// GenerateEntry expands the operator intent into a persisted entry draft.
// Every failure mode aborts before any line is emitted; there is no partial
// output. The caller still posts through the regular validation path.
func (s *quickEntryService) GenerateEntry(ctx context.Context, companyID string, req dto.QuickEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.ContactID == "" {
		return nil, ErrMissingContact
	}
	if req.ContraAccountID == "" {
		return nil, ErrMissingContraAccount
	}
	if req.GrossAmount <= 0 {
		return nil, ErrMissingGrossAmount
	}
	if req.IsPaid && (req.PaymentAccountID == nil || *req.PaymentAccountID == "") {
		return nil, ErrMissingPaymentAccount
	}

	contact, err := s.contactSvc.GetContactByID(ctx, companyID, req.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", req.ContactID, err)
	}

	contra, err := s.chartSvc.GetAccountByID(ctx, companyID, req.ContraAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contra account %s: %w", req.ContraAccountID, err)
	}
	if contra.AccountType != domain.Revenue && contra.AccountType != domain.Expense {
		return nil, fmt.Errorf("%w: contra account %s must be revenue or expense, is %s",
			apperrors.ErrValidation, contra.Code, contra.AccountType)
	}

	role, err := ClassifyTransaction(contact.Kind, contra.AccountType)
	if err != nil {
		return nil, err
	}

	amounts, err := vat.ComputeVat(req.GrossAmount, req.VatRatePercent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	plan := quickEntryPlan{
		Role:            role,
		ContraAccountID: contra.AccountID,
		Amounts:         amounts,
	}

	if !req.VatRatePercent.IsZero() && amounts.Tax > 0 {
		direction := taxDirectionFor(role, contra.AccountType)
		vatAccount, err := s.chartSvc.ResolveVatAccount(ctx, companyID, direction, req.VatRatePercent)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve VAT account: %w", err)
		}
		plan.VatAccountID = vatAccount.AccountID
	}

	switch role {
	case RoleSale:
		if id := contact.ReceivableAccountID(); id != nil {
			plan.ContactAccountID = *id
		} else {
			return nil, fmt.Errorf("%w: contact %s has no receivable account", ErrMissingContactAccount, contact.ContactID)
		}
	case RolePurchase:
		if id := contact.PayableAccountID(); id != nil {
			plan.ContactAccountID = *id
		} else {
			return nil, fmt.Errorf("%w: contact %s has no payable account", ErrMissingContactAccount, contact.ContactID)
		}
	case RoleNeutral:
		// Deliberately no contact line: the operator classifies the
		// relationship manually before the draft can balance and post.
		plan.neutralContraType = contra.AccountType
	}

	if req.IsPaid {
		payment, err := s.chartSvc.GetAccountByID(ctx, companyID, *req.PaymentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve payment account %s: %w", *req.PaymentAccountID, err)
		}
		plan.PaymentAccountID = payment.AccountID
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:      entryID,
		CompanyID:    companyID,
		EntryDate:    req.Date,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
		ContactID:    &contact.ContactID,
		Status:       domain.EntryDraft,
		Lines:        BuildQuickEntryLines(entryID, plan),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save quick entry draft", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Quick entry draft generated",
		slog.String("entry_id", entry.EntryID),
		slog.String("role", string(role)),
		slog.Int("lines", len(entry.Lines)),
		slog.Bool("paid", req.IsPaid))
	return &entry, nil
}

// taxDirectionFor maps the transaction role to the VAT direction; neutral
// entries follow the contra account type.
func taxDirectionFor(role TransactionRole, contraType domain.AccountType) domain.TaxDirection {
	switch role {
	case RoleSale:
		return domain.TaxOutput
	case RolePurchase:
		return domain.TaxInput
	default:
		if contraType == domain.Expense {
			return domain.TaxInput
		}
		return domain.TaxOutput
	}
}
