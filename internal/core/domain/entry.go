package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates whether a ledger entry is a projection from a
// recurring rule or a confirmed movement.
type EntryStatus string

const (
	Projected EntryStatus = "PROJECTED"
	Confirmed EntryStatus = "CONFIRMED"
)

// LedgerEntry is one signed line of a double-entry transaction and the
// atomic persisted unit. Entries sharing a TransactionID form a transaction
// group whose display amounts must sum to zero.
//
// Each entry carries three parallel currency truths: the display amount that
// drives the balance invariant, the account-currency amount, and optionally
// a budget-currency amount. The two rates were frozen when the entry was
// created and are never recomputed.
type LedgerEntry struct {
	EntryID         string      `json:"entryID"`
	TransactionID   string      `json:"transactionID"`
	Idx             int         `json:"idx"` // zero-based position within the transaction group
	Date            time.Time   `json:"date"`
	Description     string      `json:"description"`
	Status          EntryStatus `json:"status"`
	RecurringRuleID *string     `json:"recurringRuleID,omitempty"`

	DisplayCurrency string          `json:"displayCurrency"`
	AmountDisplay   decimal.Decimal `json:"amountDisplay"` // signed

	AccountID            string          `json:"accountID"`
	AmountAccount        decimal.Decimal `json:"amountAccount"`
	RateDisplayToAccount decimal.Decimal `json:"rateDisplayToAccount"` // frozen at creation

	BudgetID            *string          `json:"budgetID,omitempty"`
	AmountBudget        *decimal.Decimal `json:"amountBudget,omitempty"`
	RateDisplayToBudget *decimal.Decimal `json:"rateDisplayToBudget,omitempty"` // frozen at creation

	AuditFields
}

// BalanceTolerance is the maximum absolute deviation from zero a transaction
// group's display amounts may sum to, and the rounding tolerance for the
// amount/rate consistency relation.
var BalanceTolerance = decimal.NewFromFloat(0.01)
