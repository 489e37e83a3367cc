package domain

// ContactKind classifies the business relationship with a contact.
type ContactKind string

const (
	ContactCustomer ContactKind = "CUSTOMER"
	ContactVendor   ContactKind = "VENDOR"
	ContactBoth     ContactKind = "BOTH"
	ContactOther    ContactKind = "OTHER"
)

// Contact is a customer, vendor or other business relation. Customer and
// vendor contacts carry the personal ledger accounts (receivable/payable)
// that quick entry books against. AccountID is the legacy single-account
// field kept as a fallback for contacts created before the dedicated fields
// existed.
type Contact struct {
	ContactID         string      `json:"contactID"` // Primary key (UUID)
	CompanyID         string      `json:"companyID"` // Owning company (tenant)
	Name              string      `json:"name"`
	Kind              ContactKind `json:"kind"`
	CustomerAccountID *string     `json:"customerAccountID"` // Receivable account
	VendorAccountID   *string     `json:"vendorAccountID"`   // Payable account
	AccountID         *string     `json:"accountID"`         // Legacy fallback
	AuditFields
}

// ReceivableAccountID resolves the account for the customer side of a
// transaction, falling back to the legacy field. Returns nil if neither is
// set.
func (c Contact) ReceivableAccountID() *string {
	if c.CustomerAccountID != nil {
		return c.CustomerAccountID
	}
	return c.AccountID
}

// PayableAccountID resolves the account for the vendor side of a
// transaction, falling back to the legacy field. Returns nil if neither is
// set.
func (c Contact) PayableAccountID() *string {
	if c.VendorAccountID != nil {
		return c.VendorAccountID
	}
	return c.AccountID
}
