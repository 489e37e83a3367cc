package mapping

import (
	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/models"
)

// ToModelContact converts a domain Contact to a model Contact
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:         d.ContactID,
		CompanyID:         d.CompanyID,
		Name:              d.Name,
		Kind:              models.ContactKind(d.Kind),
		CustomerAccountID: d.CustomerAccountID,
		VendorAccountID:   d.VendorAccountID,
		AccountID:         d.AccountID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContact converts a model Contact to a domain Contact
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:         m.ContactID,
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		Kind:              domain.ContactKind(m.Kind),
		CustomerAccountID: m.CustomerAccountID,
		VendorAccountID:   m.VendorAccountID,
		AccountID:         m.AccountID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
