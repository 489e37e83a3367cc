package services

import (
	"context"
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

type quoteService struct {
	quoteRepo  portsrepo.QuoteRepository
	orderRepo  portsrepo.OrderRepository
	numbers    portsrepo.DocumentNumberAllocator
	contactSvc portssvc.ContactSvcFacade
}

// NewQuoteService creates a new quote service.
func NewQuoteService(quoteRepo portsrepo.QuoteRepository, orderRepo portsrepo.OrderRepository, numbers portsrepo.DocumentNumberAllocator, contactSvc portssvc.ContactSvcFacade) portssvc.QuoteSvcFacade {
	return &quoteService{
		quoteRepo:  quoteRepo,
		orderRepo:  orderRepo,
		numbers:    numbers,
		contactSvc: contactSvc,
	}
}

var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

func (s *quoteService) CreateQuote(ctx context.Context, companyID string, req dto.CreateQuoteRequest, userID string) (*domain.Quote, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !req.ValidUntil.After(req.IssueDate) {
		return nil, fmt.Errorf("%w: validUntil must be after issueDate", apperrors.ErrValidation)
	}
	if _, err := s.contactSvc.GetContactByID(ctx, companyID, req.ContactID); err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", req.ContactID, err)
	}

	lines, subtotal, taxTotal, total, err := buildDocumentLines(req.Lines)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, companyID, domain.DocQuote)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate quote number: %w", err)
	}

	now := time.Now().UTC()
	quote := domain.Quote{
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
		Status:     domain.QuoteDraft,
		ValidUntil: req.ValidUntil,
	}

	if err := s.quoteRepo.SaveQuote(ctx, quote); err != nil {
		logger.Error("Failed to save quote", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	logger.Info("Quote created", slog.String("quote_id", quote.DocumentID), slog.String("number", quote.DocumentNumber))
	return &quote, nil
}

func (s *quoteService) GetQuoteByID(ctx context.Context, companyID string, quoteID string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return quote, nil
}

func (s *quoteService) ListQuotes(ctx context.Context, companyID string, limit int, offset int) ([]domain.Quote, error) {
	if limit <= 0 {
		limit = 20
	}
	quotes, err := s.quoteRepo.ListQuotes(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	return quotes, nil
}

func (s *quoteService) SendQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error) {
	return s.transition(ctx, companyID, quoteID, userID, domain.QuoteSent, domain.QuoteDraft)
}

func (s *quoteService) AcceptQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error) {
	return s.transition(ctx, companyID, quoteID, userID, domain.QuoteAccepted, domain.QuoteSent)
}

func (s *quoteService) RejectQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error) {
	return s.transition(ctx, companyID, quoteID, userID, domain.QuoteRejected, domain.QuoteSent)
}

func (s *quoteService) ExpireQuote(ctx context.Context, companyID string, quoteID string, now time.Time, userID string) (*domain.Quote, error) {
	quote, err := s.GetQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if now.Before(quote.ValidUntil) {
		return nil, fmt.Errorf("%w: quote %s is still valid until %s", apperrors.ErrConflict, quote.DocumentNumber, quote.ValidUntil.Format("2006-01-02"))
	}
	return s.applyTransition(ctx, quote, userID, domain.QuoteExpired, domain.QuoteSent, domain.QuoteAccepted)
}

// CreateOrderFromQuote converts an accepted quote into an order. The quote
// lines are copied with fresh line IDs and zero progress; the quote ends up
// ORDERED with the order linked, in one repository transaction.
func (s *quoteService) CreateOrderFromQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Order, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	quote, err := s.GetQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("quote", quote.Status, domain.QuoteOrdered, domain.QuoteAccepted); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, companyID, domain.DocOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	now := time.Now().UTC()
	orderLines := make([]domain.DocumentLine, len(quote.Lines))
	for i, l := range quote.Lines {
		orderLines[i] = domain.DocumentLine{
			LineID:            uuid.NewString(),
			Description:       l.Description,
			Quantity:          l.Quantity,
			Unit:              l.Unit,
			UnitPrice:         l.UnitPrice,
			TaxRatePercent:    l.TaxRatePercent,
			DeliveredQuantity: decimal.Zero,
			InvoicedQuantity:  decimal.Zero,
		}
	}

	order := domain.Order{
		DocumentCore: domain.DocumentCore{
			DocumentID:     uuid.NewString(),
			CompanyID:      companyID,
			DocumentNumber: number,
			ContactID:      quote.ContactID,
			IssueDate:      now,
			CurrencyCode:   quote.CurrencyCode,
			Lines:          orderLines,
			Subtotal:       quote.Subtotal,
			TaxTotal:       quote.TaxTotal,
			Total:          quote.Total,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		},
		Status:  domain.OrderOpen,
		QuoteID: &quote.DocumentID,
	}

	ordered := *quote
	ordered.Status = domain.QuoteOrdered
	ordered.OrderID = &order.DocumentID
	ordered.LastUpdatedAt = now
	ordered.LastUpdatedBy = userID

	if err := s.orderRepo.SaveOrderFromQuote(ctx, order, ordered); err != nil {
		logger.Error("Failed to convert quote to order", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to create order from quote: %w", err)
	}

	logger.Info("Order created from quote",
		slog.String("order_id", order.DocumentID),
		slog.String("order_number", order.DocumentNumber),
		slog.String("quote_id", quote.DocumentID))
	return &order, nil
}

func (s *quoteService) transition(ctx context.Context, companyID string, quoteID string, userID string, target domain.QuoteStatus, allowed ...domain.QuoteStatus) (*domain.Quote, error) {
	quote, err := s.GetQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, quote, userID, target, allowed...)
}

func (s *quoteService) applyTransition(ctx context.Context, quote *domain.Quote, userID string, target domain.QuoteStatus, allowed ...domain.QuoteStatus) (*domain.Quote, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := guardTransition("quote", quote.Status, target, allowed...); err != nil {
		return nil, err
	}

	expected := quote.Status
	updated := *quote
	updated.Status = target
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := s.quoteRepo.UpdateQuote(ctx, updated, expected); err != nil {
		return nil, fmt.Errorf("failed to update quote %s: %w", quote.DocumentID, err)
	}

	logger.Info("Quote status changed",
		slog.String("quote_id", quote.DocumentID),
		slog.String("from", string(expected)),
		slog.String("to", string(target)))
	return &updated, nil
}
