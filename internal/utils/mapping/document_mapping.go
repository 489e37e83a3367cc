package mapping

import (
	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/models"
)

// ToModelDocumentLine converts a domain DocumentLine to a model row.
func ToModelDocumentLine(documentID string, position int, d domain.DocumentLine) models.DocumentLine {
	return models.DocumentLine{
		LineID:            d.LineID,
		DocumentID:        documentID,
		Position:          position,
		Description:       d.Description,
		Quantity:          d.Quantity,
		Unit:              d.Unit,
		UnitPrice:         int64(d.UnitPrice),
		TaxRatePercent:    d.TaxRatePercent,
		DeliveredQuantity: d.DeliveredQuantity,
		InvoicedQuantity:  d.InvoicedQuantity,
	}
}

// ToDomainDocumentLine converts a model DocumentLine to a domain DocumentLine
func ToDomainDocumentLine(m models.DocumentLine) domain.DocumentLine {
	return domain.DocumentLine{
		LineID:            m.LineID,
		Description:       m.Description,
		Quantity:          m.Quantity,
		Unit:              m.Unit,
		UnitPrice:         domain.Money(m.UnitPrice),
		TaxRatePercent:    m.TaxRatePercent,
		DeliveredQuantity: m.DeliveredQuantity,
		InvoicedQuantity:  m.InvoicedQuantity,
	}
}

// ToDomainDocumentLineSlice converts a slice of model lines to domain lines.
func ToDomainDocumentLineSlice(ms []models.DocumentLine) []domain.DocumentLine {
	ds := make([]domain.DocumentLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocumentLine(m)
	}
	return ds
}

// ToModelQuote converts a domain Quote header to a model row.
func ToModelQuote(d domain.Quote) models.Quote {
	return models.Quote{
		DocumentID:     d.DocumentID,
		CompanyID:      d.CompanyID,
		DocumentNumber: d.DocumentNumber,
		ContactID:      d.ContactID,
		IssueDate:      d.IssueDate,
		CurrencyCode:   d.CurrencyCode,
		Status:         string(d.Status),
		ValidUntil:     d.ValidUntil,
		OrderID:        d.OrderID,
		Subtotal:       int64(d.Subtotal),
		TaxTotal:       int64(d.TaxTotal),
		Total:          int64(d.Total),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainQuote converts a model Quote to a domain Quote without lines.
func ToDomainQuote(m models.Quote) domain.Quote {
	return domain.Quote{
		DocumentCore: domain.DocumentCore{
			DocumentID:     m.DocumentID,
			CompanyID:      m.CompanyID,
			DocumentNumber: m.DocumentNumber,
			ContactID:      m.ContactID,
			IssueDate:      m.IssueDate,
			CurrencyCode:   m.CurrencyCode,
			Subtotal:       domain.Money(m.Subtotal),
			TaxTotal:       domain.Money(m.TaxTotal),
			Total:          domain.Money(m.Total),
			AuditFields:    ToDomainAuditFields(m.AuditFields),
		},
		Status:     domain.QuoteStatus(m.Status),
		ValidUntil: m.ValidUntil,
		OrderID:    m.OrderID,
	}
}

// ToModelOrder converts a domain Order header to a model row.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		DocumentID:     d.DocumentID,
		CompanyID:      d.CompanyID,
		DocumentNumber: d.DocumentNumber,
		ContactID:      d.ContactID,
		IssueDate:      d.IssueDate,
		CurrencyCode:   d.CurrencyCode,
		Status:         string(d.Status),
		QuoteID:        d.QuoteID,
		Subtotal:       int64(d.Subtotal),
		TaxTotal:       int64(d.TaxTotal),
		Total:          int64(d.Total),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order without lines.
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		DocumentCore: domain.DocumentCore{
			DocumentID:     m.DocumentID,
			CompanyID:      m.CompanyID,
			DocumentNumber: m.DocumentNumber,
			ContactID:      m.ContactID,
			IssueDate:      m.IssueDate,
			CurrencyCode:   m.CurrencyCode,
			Subtotal:       domain.Money(m.Subtotal),
			TaxTotal:       domain.Money(m.TaxTotal),
			Total:          domain.Money(m.Total),
			AuditFields:    ToDomainAuditFields(m.AuditFields),
		},
		Status:  domain.OrderStatus(m.Status),
		QuoteID: m.QuoteID,
	}
}

// ToModelInvoice converts a domain Invoice header to a model row.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		DocumentID:     d.DocumentID,
		CompanyID:      d.CompanyID,
		DocumentNumber: d.DocumentNumber,
		ContactID:      d.ContactID,
		IssueDate:      d.IssueDate,
		CurrencyCode:   d.CurrencyCode,
		Status:         string(d.Status),
		DueDate:        d.DueDate,
		BookedAt:       d.BookedAt,
		EntryID:        d.EntryID,
		PaymentEntryID: d.PaymentEntryID,
		OrderID:        d.OrderID,
		Subtotal:       int64(d.Subtotal),
		TaxTotal:       int64(d.TaxTotal),
		Total:          int64(d.Total),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice without lines.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		DocumentCore: domain.DocumentCore{
			DocumentID:     m.DocumentID,
			CompanyID:      m.CompanyID,
			DocumentNumber: m.DocumentNumber,
			ContactID:      m.ContactID,
			IssueDate:      m.IssueDate,
			CurrencyCode:   m.CurrencyCode,
			Subtotal:       domain.Money(m.Subtotal),
			TaxTotal:       domain.Money(m.TaxTotal),
			Total:          domain.Money(m.Total),
			AuditFields:    ToDomainAuditFields(m.AuditFields),
		},
		Status:         domain.InvoiceStatus(m.Status),
		DueDate:        m.DueDate,
		BookedAt:       m.BookedAt,
		EntryID:        m.EntryID,
		PaymentEntryID: m.PaymentEntryID,
		OrderID:        m.OrderID,
	}
}
