package services

import (
	"context"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/dto"
)

// QuickEntrySvcFacade turns a compact operator intent into a journal entry
// draft without manual line entry.
type QuickEntrySvcFacade interface {
	// GenerateEntry derives a draft entry from the intent and persists it.
	// The draft still goes through validation before posting; for contacts of
	// kind OTHER the draft is deliberately incomplete (no contact line) and
	// will not balance until the operator adds one.
	GenerateEntry(ctx context.Context, companyID string, req dto.QuickEntryRequest, userID string) (*domain.JournalEntry, error)
}
