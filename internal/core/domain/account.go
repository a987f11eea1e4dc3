package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is a member of the account type enum.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a financial account within the ledger.
// CurrencyCode is immutable once set; accounts with ledger entries are
// archived rather than hard-deleted.
type Account struct {
	AccountID         string      `json:"accountID"`
	Name              string      `json:"name"`
	AccountType       AccountType `json:"accountType"`
	CurrencyCode      string      `json:"currencyCode"`
	IncludeInNetWorth bool        `json:"includeInNetWorth"`
	IsSystemDefault   bool        `json:"isSystemDefault"`
	IsArchived        bool        `json:"isArchived"`
	AuditFields
}

// NetWorthSign returns +1 for account types that add to net worth and -1
// for those that subtract from it.
func (a Account) NetWorthSign() int {
	if a.AccountType == Liability {
		return -1
	}
	return 1
}
