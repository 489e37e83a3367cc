package repositories

import (
	"context"
	"time"

	"github.com/buchwerk/buchwerk/internal/core/domain"
)

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves a specific entry, with its lines, by ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByCompany retrieves a paginated list of entries for a company
	// using token-based pagination. Returns the entries and a next-page token.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entry data.
// Implementations must serialize concurrent writes on the same entry ID
// (row locking or equivalent).
type JournalWriter interface {
	// SaveEntry persists a new entry and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateDraftEntry replaces the header and lines of an entry, provided it
	// is still a draft in storage. Returns apperrors.ErrConflict otherwise.
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkEntryPosted transitions a draft entry to POSTED and sets locked_at.
	// Returns apperrors.ErrConflict when the stored entry is not a draft.
	MarkEntryPosted(ctx context.Context, entryID string, lockedAt time.Time, userID string, now time.Time) error

	// SaveReversal atomically persists the reversal entry and marks the
	// original CANCELLED, linking the two. Returns apperrors.ErrConflict when
	// the stored original is no longer POSTED.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
