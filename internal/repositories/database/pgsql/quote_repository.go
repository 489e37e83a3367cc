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

const quoteColumns = `document_id, company_id, document_number, contact_id, issue_date, currency_code,
	status, valid_until, order_id, subtotal, tax_total, total,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxQuoteRepository struct {
	BaseRepository
}

// newPgxQuoteRepository creates a new repository for quote data.
func newPgxQuoteRepository(pool *pgxpool.Pool) portsrepo.QuoteRepository {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.QuoteRepository = (*PgxQuoteRepository)(nil)

func scanQuote(row pgx.Row) (*models.Quote, error) {
	var m models.Quote
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.DocumentNumber,
		&m.ContactID,
		&m.IssueDate,
		&m.CurrencyCode,
		&m.Status,
		&m.ValidUntil,
		&m.OrderID,
		&m.Subtotal,
		&m.TaxTotal,
		&m.Total,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func insertQuoteTx(ctx context.Context, tx pgx.Tx, quote domain.Quote) error {
	m := mapping.ToModelQuote(quote)
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.DocumentID,
		m.CompanyID,
		m.DocumentNumber,
		m.ContactID,
		m.IssueDate,
		m.CurrencyCode,
		m.Status,
		m.ValidUntil,
		m.OrderID,
		m.Subtotal,
		m.TaxTotal,
		m.Total,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert quote "+m.DocumentID, err)
	}
	return insertDocumentLinesTx(ctx, tx, quote.DocumentID, quote.Lines)
}

// SaveQuote persists a new quote header and its lines in one transaction.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertQuoteTx(ctx, tx, quote); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindQuoteByID retrieves a quote with its lines.
func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE document_id = $1;`
	m, err := scanQuote(r.Pool.QueryRow(ctx, query, quoteID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find quote by ID "+quoteID, err)
	}

	lines, err := findDocumentLines(ctx, r.Pool, quoteID)
	if err != nil {
		return nil, err
	}

	quote := mapping.ToDomainQuote(*m)
	quote.Lines = lines
	return &quote, nil
}

// UpdateQuote replaces the quote header while the stored status still matches
// expectedStatus. Lines are immutable once the quote exists; transitions only
// touch the header.
func (r *PgxQuoteRepository) UpdateQuote(ctx context.Context, quote domain.Quote, expectedStatus domain.QuoteStatus) error {
	m := mapping.ToModelQuote(quote)
	query := `
		UPDATE quotes
		SET status = $2, valid_until = $3, order_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE document_id = $1 AND status = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.Status,
		m.ValidUntil,
		m.OrderID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(expectedStatus),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update quote "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedUpdate(ctx, "quotes", m.DocumentID)
	}
	return nil
}

// ListQuotes retrieves a page of quote headers for a company, newest first.
func (r *PgxQuoteRepository) ListQuotes(ctx context.Context, companyID string, limit int, offset int) ([]domain.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE company_id = $1
		ORDER BY issue_date DESC, document_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query quotes for company "+companyID, err)
	}
	defer rows.Close()

	quotes := []domain.Quote{}
	for rows.Next() {
		m, err := scanQuote(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan quote row", err)
		}
		quotes = append(quotes, mapping.ToDomainQuote(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating quote rows", err)
	}
	return quotes, nil
}

// explainMissedUpdate distinguishes a missing row from a status-guard miss
// after an UPDATE affected zero rows.
func (r *BaseRepository) explainMissedUpdate(ctx context.Context, table string, documentID string) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE document_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, documentID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check "+table+" row "+documentID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrConflict
}
