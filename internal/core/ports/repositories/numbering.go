package repositories

import (
	"context"

	"github.com/buchwerk/buchwerk/internal/core/domain"
)

// DocumentNumberAllocator hands out sequential, unique, human-readable
// document numbers per company and document type (e.g. "RE-2026-00042").
// Collision-freedom under concurrent allocation is the implementation's
// guarantee; the core depends on it but does not re-check it.
type DocumentNumberAllocator interface {
	Next(ctx context.Context, companyID string, docType domain.DocumentType) (string, error)
}
