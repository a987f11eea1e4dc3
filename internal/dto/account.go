package dto

import (
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name              string             `json:"name" binding:"required"`
	AccountType       domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode      string             `json:"currencyCode" binding:"required,len=3"`
	IncludeInNetWorth *bool              `json:"includeInNetWorth"` // defaults to true when omitted
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Currency is immutable post-creation and is deliberately absent.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name              *string `json:"name"`
	IncludeInNetWorth *bool   `json:"includeInNetWorth"`
	IsArchived        *bool   `json:"isArchived"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID         string             `json:"accountID"`
	Name              string             `json:"name"`
	AccountType       domain.AccountType `json:"accountType"`
	CurrencyCode      string             `json:"currencyCode"`
	IncludeInNetWorth bool               `json:"includeInNetWorth"`
	IsSystemDefault   bool               `json:"isSystemDefault"`
	IsArchived        bool               `json:"isArchived"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         acc.AccountID,
		Name:              acc.Name,
		AccountType:       acc.AccountType,
		CurrencyCode:      acc.CurrencyCode,
		IncludeInNetWorth: acc.IncludeInNetWorth,
		IsSystemDefault:   acc.IsSystemDefault,
		IsArchived:        acc.IsArchived,
		CreatedAt:         acc.CreatedAt,
		UpdatedAt:         acc.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts to DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
