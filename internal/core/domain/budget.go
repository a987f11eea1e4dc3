package domain

import "github.com/shopspring/decimal"

// BudgetPeriod is the recurrence window a budget target applies to.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "WEEKLY"
	BudgetMonthly BudgetPeriod = "MONTHLY"
	BudgetYearly  BudgetPeriod = "YEARLY"
)

// ValidBudgetPeriod reports whether p is a member of the budget period enum.
func ValidBudgetPeriod(p BudgetPeriod) bool {
	switch p {
	case BudgetWeekly, BudgetMonthly, BudgetYearly:
		return true
	}
	return false
}

// Budget groups ledger entries for spending attribution. CurrencyCode is
// immutable once set; a budget cannot be hard-deleted while any ledger entry
// references it.
type Budget struct {
	BudgetID     string           `json:"budgetID"`
	Name         string           `json:"name"`
	CurrencyCode string           `json:"currencyCode"`
	Period       BudgetPeriod     `json:"period"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	IsArchived   bool             `json:"isArchived"`
	AuditFields
}
