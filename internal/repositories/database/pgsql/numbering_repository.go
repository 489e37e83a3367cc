package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
)

type PgxDocumentNumberAllocator struct {
	BaseRepository
	prefixes map[domain.DocumentType]string
}

// newPgxDocumentNumberAllocator creates the sequence-backed document number
// allocator. Prefixes map document types to the human-readable number prefix
// (e.g. "RE" for invoices).
func newPgxDocumentNumberAllocator(pool *pgxpool.Pool, prefixes map[domain.DocumentType]string) portsrepo.DocumentNumberAllocator {
	return &PgxDocumentNumberAllocator{
		BaseRepository: BaseRepository{Pool: pool},
		prefixes:       prefixes,
	}
}

var _ portsrepo.DocumentNumberAllocator = (*PgxDocumentNumberAllocator)(nil)

// Next allocates the next number in the per-company, per-type, per-year
// sequence. The upsert increments atomically, so concurrent callers always
// receive distinct values and the sequence has no gaps on the happy path.
func (r *PgxDocumentNumberAllocator) Next(ctx context.Context, companyID string, docType domain.DocumentType) (string, error) {
	prefix, ok := r.prefixes[docType]
	if !ok {
		return "", apperrors.NewAppError(500, "no number prefix configured for document type "+string(docType), nil)
	}

	year := time.Now().UTC().Year()
	query := `
		INSERT INTO document_numbers (company_id, doc_type, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, doc_type, year)
		DO UPDATE SET last_value = document_numbers.last_value + 1
		RETURNING last_value;
	`
	var lastValue int64
	if err := r.Pool.QueryRow(ctx, query, companyID, string(docType), year).Scan(&lastValue); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate document number for "+string(docType), err)
	}
	return fmt.Sprintf("%s-%d-%05d", prefix, year, lastValue), nil
}
