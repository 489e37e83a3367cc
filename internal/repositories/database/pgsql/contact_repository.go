package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
	"github.com/buchwerk/buchwerk/internal/models"
	"github.com/buchwerk/buchwerk/internal/utils/mapping"
)

type PgxContactRepository struct {
	BaseRepository
}

// newPgxContactRepository creates a new repository for contact data.
func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

// SaveContact persists a new contact.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	query := `
		INSERT INTO contacts (
			contact_id, company_id, name, kind, customer_account_id, vendor_account_id, account_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContactID,
		m.CompanyID,
		m.Name,
		m.Kind,
		m.CustomerAccountID,
		m.VendorAccountID,
		m.AccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert contact "+m.ContactID, err)
	}
	return nil
}

// FindContactByID retrieves a contact by its ID.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `
		SELECT contact_id, company_id, name, kind, customer_account_id, vendor_account_id, account_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM contacts
		WHERE contact_id = $1;
	`
	var m models.Contact
	err := r.Pool.QueryRow(ctx, query, contactID).Scan(
		&m.ContactID,
		&m.CompanyID,
		&m.Name,
		&m.Kind,
		&m.CustomerAccountID,
		&m.VendorAccountID,
		&m.AccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contact by ID "+contactID, err)
	}
	contact := mapping.ToDomainContact(m)
	return &contact, nil
}
