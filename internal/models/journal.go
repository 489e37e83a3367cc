package models

import "time"

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// EntrySide is the debit/credit marker on a journal line.
type EntrySide string

// JournalEntry represents a journal entry header row. Amounts live on the
// lines; the header carries status, locking and reversal links.
type JournalEntry struct {
	EntryID           string      `db:"entry_id"`
	CompanyID         string      `db:"company_id"`
	EntryDate         time.Time   `db:"entry_date"`
	Description       string      `db:"description"`
	CurrencyCode      string      `db:"currency_code"`
	Status            EntryStatus `db:"status"`
	ContactID         *string     `db:"contact_id"`
	SourceDocumentRef *string     `db:"source_document_ref"`
	LockedAt          *time.Time  `db:"locked_at"`
	OriginalEntryID   *string     `db:"original_entry_id"`
	ReversingEntryID  *string     `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine represents one debit or credit row of an entry. Amounts are
// integer minor units (cents).
type JournalLine struct {
	LineID    string    `db:"line_id"`
	EntryID   string    `db:"entry_id"`
	AccountID string    `db:"account_id"`
	Side      EntrySide `db:"side"`
	Amount    int64     `db:"amount"`
	Notes     string    `db:"notes"`
}
