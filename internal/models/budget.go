package models

import "github.com/shopspring/decimal"

// Budget is the persisted row shape of a budget.
type Budget struct {
	BudgetID     string           `db:"budget_id"`
	Name         string           `db:"name"`
	CurrencyCode string           `db:"currency_code"`
	Period       string           `db:"period"`
	TargetAmount *decimal.Decimal `db:"target_amount"`
	IsArchived   bool             `db:"is_archived"`
	AuditFields
}
