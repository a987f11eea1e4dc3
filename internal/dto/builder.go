package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeRequest records money arriving in an asset account from an income
// account. Amount is the positive magnitude in the display currency.
type IncomeRequest struct {
	Date            time.Time       `json:"date" binding:"required"`
	Description     string          `json:"description"`
	DisplayCurrency string          `json:"displayCurrency" binding:"required,len=3"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	AssetAccountID  string          `json:"assetAccountID" binding:"required"`
	IncomeAccountID string          `json:"incomeAccountID" binding:"required"`
	BudgetID        *string         `json:"budgetID"`
}

// ExpenseRequest records money leaving an asset account into an expense
// account. Amount is the positive magnitude in the display currency.
type ExpenseRequest struct {
	Date             time.Time       `json:"date" binding:"required"`
	Description      string          `json:"description"`
	DisplayCurrency  string          `json:"displayCurrency" binding:"required,len=3"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	AssetAccountID   string          `json:"assetAccountID" binding:"required"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	BudgetID         *string         `json:"budgetID"`
}

// TransferRequest moves money between two accounts, freezing a rate between
// the two account currencies when they differ.
type TransferRequest struct {
	Date            time.Time       `json:"date" binding:"required"`
	Description     string          `json:"description"`
	DisplayCurrency string          `json:"displayCurrency" binding:"required,len=3"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	FromAccountID   string          `json:"fromAccountID" binding:"required"`
	ToAccountID     string          `json:"toAccountID" binding:"required"`
}

// SplitLine is one leg of a multi-split transaction. Amount is signed.
type SplitLine struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	BudgetID  *string         `json:"budgetID"`
}

// SplitRequest creates an arbitrary multi-split transaction. The lines must
// already sum to zero in the display currency; the builder rejects unbalanced
// input before touching the engine.
type SplitRequest struct {
	Date            time.Time   `json:"date" binding:"required"`
	Description     string      `json:"description"`
	DisplayCurrency string      `json:"displayCurrency" binding:"required,len=3"`
	Lines           []SplitLine `json:"lines" binding:"required,min=2,dive"`
}
