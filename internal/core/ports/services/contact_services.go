package services

import (
	"context"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/dto"
)

// ContactSvcFacade defines operations on contacts.
type ContactSvcFacade interface {
	// CreateContact persists a new contact after validating that any
	// referenced ledger accounts exist.
	CreateContact(ctx context.Context, companyID string, req dto.CreateContactRequest, userID string) (*domain.Contact, error)

	// GetContactByID retrieves a specific contact by its ID.
	GetContactByID(ctx context.Context, companyID string, contactID string) (*domain.Contact, error)
}
