package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the persisted row shape of a ledger entry.
// Nullable columns use pointers; decimals are stored as TEXT and parsed by
// the repository to keep arbitrary precision.
type LedgerEntry struct {
	EntryID         string    `db:"entry_id"`
	TransactionID   string    `db:"transaction_id"`
	Idx             int       `db:"idx"`
	Date            time.Time `db:"date"`
	Description     string    `db:"description"`
	Status          string    `db:"status"`
	RecurringRuleID *string   `db:"recurring_rule_id"`

	DisplayCurrency string          `db:"display_currency"`
	AmountDisplay   decimal.Decimal `db:"amount_display"`

	AccountID            string          `db:"account_id"`
	AmountAccount        decimal.Decimal `db:"amount_account"`
	RateDisplayToAccount decimal.Decimal `db:"rate_display_to_account"`

	BudgetID            *string          `db:"budget_id"`
	AmountBudget        *decimal.Decimal `db:"amount_budget"`
	RateDisplayToBudget *decimal.Decimal `db:"rate_display_to_budget"`

	AuditFields
}
