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

type contactService struct {
	contactRepo portsrepo.ContactRepositoryFacade
	chartSvc    portssvc.ChartReaderSvc
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade, chartSvc portssvc.ChartReaderSvc) portssvc.ContactSvcFacade {
	return &contactService{
		contactRepo: contactRepo,
		chartSvc:    chartSvc,
	}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, companyID string, req dto.CreateContactRequest, userID string) (*domain.Contact, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	// Every referenced ledger account must exist in the company's chart.
	for _, ref := range []*string{req.CustomerAccountID, req.VendorAccountID, req.AccountID} {
		if ref == nil {
			continue
		}
		if _, err := s.chartSvc.GetAccountByID(ctx, companyID, *ref); err != nil {
			return nil, fmt.Errorf("%w: contact account %s does not resolve", apperrors.ErrValidation, *ref)
		}
	}

	now := time.Now().UTC()
	contact := domain.Contact{
		ContactID:         uuid.NewString(),
		CompanyID:         companyID,
		Name:              req.Name,
		Kind:              domain.ContactKind(req.Kind),
		CustomerAccountID: req.CustomerAccountID,
		VendorAccountID:   req.VendorAccountID,
		AccountID:         req.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		logger.Error("Failed to save contact", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	logger.Info("Contact created", slog.String("contact_id", contact.ContactID), slog.String("kind", string(contact.Kind)))
	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, companyID string, contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}
