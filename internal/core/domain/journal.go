package domain

import "time"

// EntryStatus indicates the lifecycle state of a journal entry.
// Entries are created DRAFT and are mutable only while DRAFT. Posting locks
// the entry; a posted entry is never edited or deleted, only closed by a
// reversal entry that marks the original CANCELLED.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// EntrySide indicates whether a journal line is a debit or a credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Flip returns the opposite side. Used when generating reversal entries.
func (s EntrySide) Flip() EntrySide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// JournalLine is a single row within a journal entry, affecting one account.
// Amounts are always positive; the side carries the direction.
type JournalLine struct {
	LineID    string    `json:"lineID"`    // Primary key (UUID)
	EntryID   string    `json:"entryID"`   // FK -> JournalEntry.EntryID
	AccountID string    `json:"accountID"` // FK -> Account.AccountID
	Side      EntrySide `json:"side"`      // DEBIT or CREDIT
	Amount    Money     `json:"amount"`    // Positive, minor units
	Notes     string    `json:"notes"`     // Nullable
}

// JournalEntry is a single financial event composed of journal lines.
// Line insertion order is irrelevant to balance but preserved for display.
type JournalEntry struct {
	EntryID           string        `json:"entryID"`   // Primary key (UUID)
	CompanyID         string        `json:"companyID"` // Owning company (tenant)
	EntryDate         time.Time     `json:"entryDate"` // Date the event occurred
	Description       string        `json:"description"`
	ContactID         *string       `json:"contactID"`         // Nullable FK -> Contact
	SourceDocumentRef *string       `json:"sourceDocumentRef"` // Nullable link to the originating document
	CurrencyCode      string        `json:"currencyCode"`
	Status            EntryStatus   `json:"status"`
	LockedAt          *time.Time    `json:"lockedAt"`        // Set exactly once, on posting
	OriginalEntryID   *string       `json:"originalEntryID"` // Set on reversal entries, points at the cancelled original
	ReversingEntryID  *string       `json:"reversingEntryID"`
	Lines             []JournalLine `json:"lines"`
	AuditFields
}

// DebitTotal sums the debit side in minor units.
func (e JournalEntry) DebitTotal() Money {
	var total Money
	for _, l := range e.Lines {
		if l.Side == Debit {
			total += l.Amount
		}
	}
	return total
}

// CreditTotal sums the credit side in minor units.
func (e JournalEntry) CreditTotal() Money {
	var total Money
	for _, l := range e.Lines {
		if l.Side == Credit {
			total += l.Amount
		}
	}
	return total
}

// IsReversal reports whether this entry was generated to reverse another.
func (e JournalEntry) IsReversal() bool {
	return e.OriginalEntryID != nil
}
