package domain

// AccountClass defines the fundamental accounting class of an account.
type AccountClass string

const (
	Asset     AccountClass = "ASSET"
	Liability AccountClass = "LIABILITY"
	Equity    AccountClass = "EQUITY"
	Revenue   AccountClass = "REVENUE"
	Expense   AccountClass = "EXPENSE"
)

// Valid reports whether c is one of the five account classes.
func (c AccountClass) Valid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debit is the natural side of the class.
// Assets and expenses grow with debits; liabilities, equity and revenue with credits.
func (c AccountClass) IsDebitNormal() bool {
	return c == Asset || c == Expense
}

// Account represents a ledger account in a tenant's chart of accounts.
type Account struct {
	AccountID        string       `json:"accountID"`
	TenantID         string       `json:"tenantID"`
	Code             string       `json:"code"` // unique per tenant, sorts lexicographically
	Name             string       `json:"name"`
	Class            AccountClass `json:"class"`
	IsCurrent        *bool        `json:"isCurrent,omitempty"` // nil when the chart leaves it undefined
	ParentAccountID  string       `json:"parentAccountID,omitempty"`
	AllowManualEntry bool         `json:"allowManualEntry"` // false for header accounts
	IsActive         bool         `json:"isActive"`
	AuditFields
}

// IsPostable reports whether journal lines may reference the account.
func (a Account) IsPostable() bool {
	return a.AllowManualEntry && a.IsActive
}

// AccountUpdate lists the mutable account fields. Nil fields are left unchanged.
type AccountUpdate struct {
	Name             *string `validate:"omitempty,min=1,max=255"`
	IsCurrent        *bool
	ParentAccountID  *string
	AllowManualEntry *bool
}
