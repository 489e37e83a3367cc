package dto

import "github.com/buchwerk/buchwerk/internal/core/domain"

// CreateContactRequest defines the input for creating a contact.
// The account fields must reference existing chart accounts.
type CreateContactRequest struct {
	Name              string  `json:"name" validate:"required"`
	Kind              string  `json:"kind" validate:"required,oneof=CUSTOMER VENDOR BOTH OTHER"`
	CustomerAccountID *string `json:"customerAccountID"`
	VendorAccountID   *string `json:"vendorAccountID"`
	AccountID         *string `json:"accountID"` // Legacy single-account field
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID         string  `json:"contactID"`
	Name              string  `json:"name"`
	Kind              string  `json:"kind"`
	CustomerAccountID *string `json:"customerAccountID,omitempty"`
	VendorAccountID   *string `json:"vendorAccountID,omitempty"`
	AccountID         *string `json:"accountID,omitempty"`
}

// ToContactResponse converts a domain.Contact to ContactResponse.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:         c.ContactID,
		Name:              c.Name,
		Kind:              string(c.Kind),
		CustomerAccountID: c.CustomerAccountID,
		VendorAccountID:   c.VendorAccountID,
		AccountID:         c.AccountID,
	}
}
