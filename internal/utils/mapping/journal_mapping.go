package mapping

import (
	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model row.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		CompanyID:         d.CompanyID,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		CurrencyCode:      d.CurrencyCode,
		Status:            models.EntryStatus(d.Status),
		ContactID:         d.ContactID,
		SourceDocumentRef: d.SourceDocumentRef,
		LockedAt:          d.LockedAt,
		OriginalEntryID:   d.OriginalEntryID,
		ReversingEntryID:  d.ReversingEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		CompanyID:         m.CompanyID,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		CurrencyCode:      m.CurrencyCode,
		Status:            domain.EntryStatus(m.Status),
		ContactID:         m.ContactID,
		SourceDocumentRef: m.SourceDocumentRef,
		LockedAt:          m.LockedAt,
		OriginalEntryID:   m.OriginalEntryID,
		ReversingEntryID:  m.ReversingEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		AccountID: d.AccountID,
		Side:      models.EntrySide(d.Side),
		Amount:    int64(d.Amount),
		Notes:     d.Notes,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Side:      domain.EntrySide(m.Side),
		Amount:    domain.Money(m.Amount),
		Notes:     m.Notes,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
