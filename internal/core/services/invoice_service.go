package services

import (
	"context"
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
)

type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepository
	numbers     portsrepo.DocumentNumberAllocator
	contactSvc  portssvc.ContactSvcFacade
	chartSvc    portssvc.ChartSvcFacade
	journalSvc  portssvc.JournalSvcFacade
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepository, numbers portsrepo.DocumentNumberAllocator, contactSvc portssvc.ContactSvcFacade, chartSvc portssvc.ChartSvcFacade, journalSvc portssvc.JournalSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		numbers:     numbers,
		contactSvc:  contactSvc,
		chartSvc:    chartSvc,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: dueDate must not be before issueDate", apperrors.ErrValidation)
	}
	if _, err := s.contactSvc.GetContactByID(ctx, companyID, req.ContactID); err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", req.ContactID, err)
	}

	lines, subtotal, taxTotal, total, err := buildDocumentLines(req.Lines)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, companyID, domain.DocInvoice)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		DocumentCore: domain.DocumentCore{
			DocumentID:     uuid.NewString(),
			CompanyID:      companyID,
			DocumentNumber: number,
			ContactID:      req.ContactID,
			IssueDate:      req.IssueDate,
			CurrencyCode:   req.CurrencyCode,
			Lines:          lines,
			Subtotal:       subtotal,
			TaxTotal:       taxTotal,
			Total:          total,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		},
		Status:  domain.InvoiceDraft,
		DueDate: req.DueDate,
		OrderID: req.OrderID,
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.DocumentID), slog.String("number", invoice.DocumentNumber))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, companyID string, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}

// BookInvoice builds the booking journal entry (receivable over the gross
// total, revenue over the net subtotal, one output-VAT line per distinct
// rate), validates it through the regular entry validator, and hands both
// the frozen invoice and the entry to the repository as one transaction.
func (s *invoiceService) BookInvoice(ctx context.Context, companyID string, invoiceID string, req dto.BookInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	invoice, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("invoice", invoice.Status, domain.InvoiceBooked, domain.InvoiceDraft); err != nil {
		return nil, err
	}
	if invoice.Total <= 0 {
		return nil, fmt.Errorf("%w: invoice %s has a non-positive total", apperrors.ErrValidation, invoice.DocumentNumber)
	}

	contact, err := s.contactSvc.GetContactByID(ctx, companyID, invoice.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", invoice.ContactID, err)
	}
	receivableID := contact.ReceivableAccountID()
	if receivableID == nil {
		return nil, fmt.Errorf("%w: contact %s has no receivable account", ErrMissingContactAccount, contact.ContactID)
	}
	revenue, err := s.chartSvc.GetAccountByID(ctx, companyID, req.RevenueAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revenue account %s: %w", req.RevenueAccountID, err)
	}
	if revenue.AccountType != domain.Revenue {
		return nil, fmt.Errorf("%w: account %s is not a revenue account", apperrors.ErrValidation, revenue.Code)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entryLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: *receivableID, Side: domain.Debit, Amount: invoice.Total},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: revenue.AccountID, Side: domain.Credit, Amount: invoice.Subtotal},
	}

	rates, taxes, err := taxByRate(invoice.Lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	for _, rate := range rates {
		vatAccount, err := s.chartSvc.ResolveVatAccount(ctx, companyID, domain.TaxOutput, rate)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve VAT account for rate %s: %w", rate, err)
		}
		entryLines = append(entryLines, domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: vatAccount.AccountID,
			Side:      domain.Credit,
			Amount:    taxes[rate.String()],
		})
	}

	entry := domain.JournalEntry{
		EntryID:           entryID,
		CompanyID:         companyID,
		EntryDate:         invoice.IssueDate,
		Description:       fmt.Sprintf("Invoice %s", invoice.DocumentNumber),
		CurrencyCode:      invoice.CurrencyCode,
		ContactID:         &contact.ContactID,
		SourceDocumentRef: &invoice.DocumentID,
		Status:            domain.EntryPosted,
		LockedAt:          &now,
		Lines:             entryLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalSvc.ValidateEntry(ctx, companyID, entry); err != nil {
		return nil, fmt.Errorf("booking entry for invoice %s is invalid: %w", invoice.DocumentNumber, err)
	}

	booked := *invoice
	booked.Status = domain.InvoiceBooked
	booked.BookedAt = &now
	booked.EntryID = &entryID
	booked.LastUpdatedAt = now
	booked.LastUpdatedBy = userID

	if err := s.invoiceRepo.BookInvoice(ctx, booked, entry); err != nil {
		logger.Error("Failed to book invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to book invoice %s: %w", invoice.DocumentNumber, err)
	}

	logger.Info("Invoice booked",
		slog.String("invoice_id", booked.DocumentID),
		slog.String("number", booked.DocumentNumber),
		slog.String("entry_id", entryID))
	return &booked, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error) {
	invoice, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, invoice, userID, domain.InvoiceSent, domain.InvoiceBooked)
}

// MarkInvoicePaid posts the payment entry against the receivable and moves
// the invoice to PAID, atomically. Accepted from SENT and OVERDUE.
func (s *invoiceService) MarkInvoicePaid(ctx context.Context, companyID string, invoiceID string, req dto.MarkPaidRequest, userID string) (*domain.Invoice, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	invoice, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("invoice", invoice.Status, domain.InvoicePaid, domain.InvoiceSent, domain.InvoiceOverdue); err != nil {
		return nil, err
	}

	contact, err := s.contactSvc.GetContactByID(ctx, companyID, invoice.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", invoice.ContactID, err)
	}
	receivableID := contact.ReceivableAccountID()
	if receivableID == nil {
		return nil, fmt.Errorf("%w: contact %s has no receivable account", ErrMissingContactAccount, contact.ContactID)
	}
	payment, err := s.chartSvc.GetAccountByID(ctx, companyID, req.PaymentAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve payment account %s: %w", req.PaymentAccountID, err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:           entryID,
		CompanyID:         companyID,
		EntryDate:         req.PaidAt,
		Description:       fmt.Sprintf("Payment for invoice %s", invoice.DocumentNumber),
		CurrencyCode:      invoice.CurrencyCode,
		ContactID:         &contact.ContactID,
		SourceDocumentRef: &invoice.DocumentID,
		Status:            domain.EntryPosted,
		LockedAt:          &now,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: payment.AccountID, Side: domain.Debit, Amount: invoice.Total},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: *receivableID, Side: domain.Credit, Amount: invoice.Total},
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalSvc.ValidateEntry(ctx, companyID, entry); err != nil {
		return nil, fmt.Errorf("payment entry for invoice %s is invalid: %w", invoice.DocumentNumber, err)
	}

	paid := *invoice
	paid.Status = domain.InvoicePaid
	paid.PaymentEntryID = &entryID
	paid.LastUpdatedAt = now
	paid.LastUpdatedBy = userID

	if err := s.invoiceRepo.MarkInvoicePaid(ctx, paid, entry); err != nil {
		logger.Error("Failed to mark invoice paid", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to mark invoice %s paid: %w", invoice.DocumentNumber, err)
	}

	logger.Info("Invoice paid",
		slog.String("invoice_id", paid.DocumentID),
		slog.String("number", paid.DocumentNumber),
		slog.String("payment_entry_id", entryID))
	return &paid, nil
}

func (s *invoiceService) MarkInvoiceOverdue(ctx context.Context, companyID string, invoiceID string, now time.Time, userID string) (*domain.Invoice, error) {
	invoice, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !now.After(invoice.DueDate) {
		return nil, fmt.Errorf("%w: invoice %s is not due before %s", apperrors.ErrConflict, invoice.DocumentNumber, invoice.DueDate.Format("2006-01-02"))
	}
	return s.applyTransition(ctx, invoice, userID, domain.InvoiceOverdue, domain.InvoiceSent)
}

// CancelInvoice reverses the booking entry and marks the invoice cancelled.
// The reversal and the status change are two writes; if the second fails the
// ledger still tells the truth and the invoice update can be retried.
func (s *invoiceService) CancelInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	invoice, err := s.GetInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("invoice", invoice.Status, domain.InvoiceCancelled, domain.InvoiceBooked, domain.InvoiceSent); err != nil {
		return nil, err
	}
	if invoice.EntryID == nil {
		return nil, fmt.Errorf("%w: invoice %s has no booking entry", apperrors.ErrInternal, invoice.DocumentNumber)
	}

	reversal, err := s.journalSvc.ReverseEntry(ctx, companyID, *invoice.EntryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse booking entry for invoice %s: %w", invoice.DocumentNumber, err)
	}

	cancelled, err := s.applyTransition(ctx, invoice, userID, domain.InvoiceCancelled, domain.InvoiceBooked, domain.InvoiceSent)
	if err != nil {
		return nil, err
	}

	logger.Info("Invoice cancelled",
		slog.String("invoice_id", cancelled.DocumentID),
		slog.String("number", cancelled.DocumentNumber),
		slog.String("reversal_entry_id", reversal.EntryID))
	return cancelled, nil
}

func (s *invoiceService) applyTransition(ctx context.Context, invoice *domain.Invoice, userID string, target domain.InvoiceStatus, allowed ...domain.InvoiceStatus) (*domain.Invoice, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := guardTransition("invoice", invoice.Status, target, allowed...); err != nil {
		return nil, err
	}

	expected := invoice.Status
	updated := *invoice
	updated.Status = target
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, updated, expected); err != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoice.DocumentID, err)
	}

	logger.Info("Invoice status changed",
		slog.String("invoice_id", invoice.DocumentID),
		slog.String("from", string(expected)),
		slog.String("to", string(target)))
	return &updated, nil
}
