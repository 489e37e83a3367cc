package services

import (
	"context"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific entry, with lines, by its ID.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a token-paginated list of entries.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryValidatorSvc checks the double-entry invariants on an entry draft.
// Side effect free and repeatable.
type EntryValidatorSvc interface {
	// ValidateEntry returns nil when the draft satisfies the balance,
	// minimum-lines, positive-amount and account-reference invariants.
	ValidateEntry(ctx context.Context, companyID string, entry domain.JournalEntry) error
}

// JournalWriterSvc defines the journal entry lifecycle operations.
type JournalWriterSvc interface {
	// CreateEntry persists a new entry draft. Drafts need not balance yet.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry edits an entry that is still a draft.
	UpdateDraftEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry validates and locks a draft, making it immutable.
	PostEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates the posted mirror image of a posted entry and
	// marks the original cancelled.
	ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	EntryValidatorSvc
	JournalWriterSvc
}
