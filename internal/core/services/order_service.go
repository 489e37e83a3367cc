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

type orderService struct {
	orderRepo  portsrepo.OrderRepository
	numbers    portsrepo.DocumentNumberAllocator
	contactSvc portssvc.ContactSvcFacade
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo portsrepo.OrderRepository, numbers portsrepo.DocumentNumberAllocator, contactSvc portssvc.ContactSvcFacade) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:  orderRepo,
		numbers:    numbers,
		contactSvc: contactSvc,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) CreateOrder(ctx context.Context, companyID string, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.contactSvc.GetContactByID(ctx, companyID, req.ContactID); err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", req.ContactID, err)
	}

	lines, subtotal, taxTotal, total, err := buildDocumentLines(req.Lines)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, companyID, domain.DocOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	now := time.Now().UTC()
	order := domain.Order{
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
		Status: domain.OrderOpen,
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save order", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	logger.Info("Order created", slog.String("order_id", order.DocumentID), slog.String("number", order.DocumentNumber))
	return &order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, companyID string, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, companyID string, limit int, offset int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	orders, err := s.orderRepo.ListOrders(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *orderService) RecordDelivery(ctx context.Context, companyID string, orderID string, req dto.RecordProgressRequest, userID string) (*domain.Order, error) {
	return s.recordProgress(ctx, companyID, orderID, req, userID, func(l *domain.DocumentLine, qty decimal.Decimal) error {
		next := l.DeliveredQuantity.Add(qty)
		if next.GreaterThan(l.Quantity) {
			return fmt.Errorf("%w: delivered %s would exceed ordered quantity %s on line %s",
				apperrors.ErrValidation, next, l.Quantity, l.LineID)
		}
		l.DeliveredQuantity = next
		return nil
	})
}

func (s *orderService) RecordInvoiced(ctx context.Context, companyID string, orderID string, req dto.RecordProgressRequest, userID string) (*domain.Order, error) {
	return s.recordProgress(ctx, companyID, orderID, req, userID, func(l *domain.DocumentLine, qty decimal.Decimal) error {
		next := l.InvoicedQuantity.Add(qty)
		if next.GreaterThan(l.Quantity) {
			return fmt.Errorf("%w: invoiced %s would exceed ordered quantity %s on line %s",
				apperrors.ErrValidation, next, l.Quantity, l.LineID)
		}
		l.InvoicedQuantity = next
		return nil
	})
}

// recordProgress applies quantity deltas to order lines and re-derives the
// order status. Deltas are strictly positive, so the counters can only grow.
func (s *orderService) recordProgress(ctx context.Context, companyID string, orderID string, req dto.RecordProgressRequest, userID string, apply func(*domain.DocumentLine, decimal.Decimal) error) (*domain.Order, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	order, err := s.GetOrderByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}

	byLineID := make(map[string]*domain.DocumentLine, len(order.Lines))
	for i := range order.Lines {
		byLineID[order.Lines[i].LineID] = &order.Lines[i]
	}

	for _, p := range req.Lines {
		if !p.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: progress quantity for line %s must be positive", apperrors.ErrValidation, p.LineID)
		}
		line, ok := byLineID[p.LineID]
		if !ok {
			return nil, fmt.Errorf("%w: order line %s", apperrors.ErrNotFound, p.LineID)
		}
		if err := apply(line, p.Quantity); err != nil {
			return nil, err
		}
	}

	previous := order.Status
	order.Status = domain.DeriveOrderStatus(order.Lines)
	order.LastUpdatedAt = time.Now().UTC()
	order.LastUpdatedBy = userID

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}

	if order.Status != previous {
		logger.Info("Order status changed",
			slog.String("order_id", order.DocumentID),
			slog.String("from", string(previous)),
			slog.String("to", string(order.Status)))
	}
	return order, nil
}
