package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// CreateEntryRequest is one line of a transaction group being created.
// AmountDisplay is signed; the group must sum to zero in display currency.
type CreateEntryRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	AmountDisplay decimal.Decimal `json:"amountDisplay" binding:"required"`
	BudgetID      *string         `json:"budgetID"`
}

// CreateTransactionRequest defines the data needed to create a transaction
// group. Entry order is preserved as idx.
type CreateTransactionRequest struct {
	Date            time.Time            `json:"date" binding:"required"`
	Description     string               `json:"description"`
	DisplayCurrency string               `json:"displayCurrency" binding:"required,len=3"`
	Status          domain.EntryStatus   `json:"status" binding:"omitempty,oneof=PROJECTED CONFIRMED"`
	RecurringRuleID *string              `json:"recurringRuleID"`
	Entries         []CreateEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines the patch allowed on a single ledger entry.
// Pointers distinguish zero-value updates from fields not provided.
// Patching an amount re-derives the account/budget amounts from the frozen
// rates and re-validates the whole transaction group.
type UpdateEntryRequest struct {
	Date          *time.Time          `json:"date"`
	Description   *string             `json:"description"`
	Status        *domain.EntryStatus `json:"status" binding:"omitempty,oneof=PROJECTED CONFIRMED"`
	AmountDisplay *decimal.Decimal    `json:"amountDisplay"`
	BudgetID      *string             `json:"budgetID"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID              string              `json:"entryID"`
	TransactionID        string              `json:"transactionID"`
	Idx                  int                 `json:"idx"`
	Date                 time.Time           `json:"date"`
	Description          string              `json:"description"`
	Status               domain.EntryStatus  `json:"status"`
	RecurringRuleID      *string             `json:"recurringRuleID,omitempty"`
	DisplayCurrency      string              `json:"displayCurrency"`
	AmountDisplay        decimal.Decimal     `json:"amountDisplay"`
	AccountID            string              `json:"accountID"`
	AmountAccount        decimal.Decimal     `json:"amountAccount"`
	RateDisplayToAccount decimal.Decimal     `json:"rateDisplayToAccount"`
	BudgetID             *string             `json:"budgetID,omitempty"`
	AmountBudget         *decimal.Decimal    `json:"amountBudget,omitempty"`
	RateDisplayToBudget  *decimal.Decimal    `json:"rateDisplayToBudget,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// TransactionResponse is a transaction group in idx order.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Entries       []EntryResponse `json:"entries"`
}

// ListTransactionsParams holds pagination parameters for listing entries.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a paginated page of ledger entries.
type ListTransactionsResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to an EntryResponse DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:              e.EntryID,
		TransactionID:        e.TransactionID,
		Idx:                  e.Idx,
		Date:                 e.Date,
		Description:          e.Description,
		Status:               e.Status,
		RecurringRuleID:      e.RecurringRuleID,
		DisplayCurrency:      e.DisplayCurrency,
		AmountDisplay:        e.AmountDisplay,
		AccountID:            e.AccountID,
		AmountAccount:        e.AmountAccount,
		RateDisplayToAccount: e.RateDisplayToAccount,
		BudgetID:             e.BudgetID,
		AmountBudget:         e.AmountBudget,
		RateDisplayToBudget:  e.RateDisplayToBudget,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries to DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}

// ToTransactionResponse wraps a transaction group into its response DTO.
func ToTransactionResponse(transactionID string, entries []domain.LedgerEntry) TransactionResponse {
	return TransactionResponse{
		TransactionID: transactionID,
		Entries:       ToEntryResponses(entries),
	}
}
