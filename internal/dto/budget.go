package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a new budget.
type CreateBudgetRequest struct {
	Name         string              `json:"name" binding:"required"`
	CurrencyCode string              `json:"currencyCode" binding:"required,len=3"`
	Period       domain.BudgetPeriod `json:"period" binding:"required,oneof=WEEKLY MONTHLY YEARLY"`
	TargetAmount *decimal.Decimal    `json:"targetAmount"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// Currency is immutable post-creation and is deliberately absent.
type UpdateBudgetRequest struct {
	Name         *string              `json:"name"`
	Period       *domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	TargetAmount *decimal.Decimal     `json:"targetAmount"`
	IsArchived   *bool                `json:"isArchived"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID     string              `json:"budgetID"`
	Name         string              `json:"name"`
	CurrencyCode string              `json:"currencyCode"`
	Period       domain.BudgetPeriod `json:"period"`
	TargetAmount *decimal.Decimal    `json:"targetAmount,omitempty"`
	IsArchived   bool                `json:"isArchived"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:     b.BudgetID,
		Name:         b.Name,
		CurrencyCode: b.CurrencyCode,
		Period:       b.Period,
		TargetAmount: b.TargetAmount,
		IsArchived:   b.IsArchived,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToBudgetResponses converts a slice of domain budgets to DTOs.
func ToBudgetResponses(budgets []domain.Budget) []BudgetResponse {
	out := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		out[i] = ToBudgetResponse(&budgets[i])
	}
	return out
}
