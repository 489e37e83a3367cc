package models

// ContactKind classifies the business relationship with a contact.
type ContactKind string

// Contact represents a customer/vendor row with its personal ledger
// account references.
type Contact struct {
	ContactID         string      `db:"contact_id"`
	CompanyID         string      `db:"company_id"`
	Name              string      `db:"name"`
	Kind              ContactKind `db:"kind"`
	CustomerAccountID *string     `db:"customer_account_id"`
	VendorAccountID   *string     `db:"vendor_account_id"`
	AccountID         *string     `db:"account_id"` // Legacy single-account column
	AuditFields
}
