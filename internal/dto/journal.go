package dto

import (
	"time"

	"github.com/buchwerk/buchwerk/internal/core/domain"
)

// EntryLineRequest is one line of a journal entry draft. Amounts are
// positive integer minor units; the side carries the direction.
type EntryLineRequest struct {
	AccountID string       `json:"accountID" validate:"required"`
	Side      string       `json:"side" validate:"required,oneof=DEBIT CREDIT"`
	Amount    domain.Money `json:"amount" validate:"required,gt=0"`
	Notes     string       `json:"notes"`
}

// CreateEntryRequest defines the input for creating a journal entry draft.
// Drafts are not required to balance; balance is enforced on posting.
type CreateEntryRequest struct {
	Date              time.Time          `json:"date" validate:"required"`
	Description       string             `json:"description" validate:"required"`
	CurrencyCode      string             `json:"currencyCode" validate:"required,len=3"`
	ContactID         *string            `json:"contactID"`
	SourceDocumentRef *string            `json:"sourceDocumentRef"`
	Lines             []EntryLineRequest `json:"lines" validate:"dive"`
}

// UpdateEntryRequest defines draft-only edits to a journal entry.
type UpdateEntryRequest struct {
	Date        *time.Time          `json:"date"`
	Description *string             `json:"description"`
	Lines       *[]EntryLineRequest `json:"lines" validate:"omitempty,dive"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID    string       `json:"lineID"`
	AccountID string       `json:"accountID"`
	Side      string       `json:"side"`
	Amount    domain.Money `json:"amount"`
	Notes     string       `json:"notes,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	Date              time.Time           `json:"date"`
	Description       string              `json:"description"`
	CurrencyCode      string              `json:"currencyCode"`
	Status            string              `json:"status"`
	ContactID         *string             `json:"contactID,omitempty"`
	SourceDocumentRef *string             `json:"sourceDocumentRef,omitempty"`
	LockedAt          *time.Time          `json:"lockedAt,omitempty"`
	OriginalEntryID   *string             `json:"originalEntryID,omitempty"`
	ReversingEntryID  *string             `json:"reversingEntryID,omitempty"`
	Lines             []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
}

// ListEntriesResponse is a page of journal entries with a next-page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Side:      string(l.Side),
			Amount:    l.Amount,
			Notes:     l.Notes,
		}
	}
	return EntryResponse{
		EntryID:           e.EntryID,
		Date:              e.EntryDate,
		Description:       e.Description,
		CurrencyCode:      e.CurrencyCode,
		Status:            string(e.Status),
		ContactID:         e.ContactID,
		SourceDocumentRef: e.SourceDocumentRef,
		LockedAt:          e.LockedAt,
		OriginalEntryID:   e.OriginalEntryID,
		ReversingEntryID:  e.ReversingEntryID,
		Lines:             lines,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}
