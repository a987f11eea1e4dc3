package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse is an account balance, optionally as of a date.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
}

// BalancePoint is one point of an account's cumulative balance history.
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceHistoryResponse is a time-ordered cumulative balance series.
// The first point carries the balance immediately before the range start.
type BalanceHistoryResponse struct {
	AccountID string         `json:"accountID"`
	Currency  string         `json:"currency"`
	Points    []BalancePoint `json:"points"`
}

// NetWorthLine is one account's contribution to net worth.
type NetWorthLine struct {
	AccountID        string          `json:"accountID"`
	Name             string          `json:"name"`
	Balance          decimal.Decimal `json:"balance"`
	Currency         string          `json:"currency"`
	ConvertedBalance decimal.Decimal `json:"convertedBalance"`
}

// NetWorthResponse is the net worth rollup in a display currency.
// SkippedAccounts lists accounts omitted from the total because no
// conversion rate to the display currency exists; a non-empty list means
// the total is understated.
type NetWorthResponse struct {
	DisplayCurrency string          `json:"displayCurrency"`
	NetWorth        decimal.Decimal `json:"netWorth"`
	Lines           []NetWorthLine  `json:"lines"`
	SkippedAccounts []string        `json:"skippedAccounts,omitempty"`
}
