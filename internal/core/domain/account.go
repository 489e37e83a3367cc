package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is immutable reference data from the chart of accounts.
// Looked up by ID or by code; the code is the human-facing key from the
// configured chart (SKR03/SKR04/custom), e.g. "1776" for 19% output VAT.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary key (UUID)
	CompanyID   string      `json:"companyID"`   // Owning company (tenant)
	Code        string      `json:"code"`        // Chart-of-accounts code, unique per company
	Name        string      `json:"name"`        // User-facing name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft delete flag
	AuditFields
}
