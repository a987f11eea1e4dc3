package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// RecurringLineRequest is one template line of a recurring rule.
type RecurringLineRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	AmountDisplay decimal.Decimal `json:"amountDisplay" binding:"required"`
	BudgetID      *string         `json:"budgetID"`
}

// CreateRecurringRuleRequest defines the data needed to create a rule.
type CreateRecurringRuleRequest struct {
	Description     string                     `json:"description" binding:"required"`
	DisplayCurrency string                     `json:"displayCurrency" binding:"required,len=3"`
	Frequency       domain.RecurrenceFrequency `json:"frequency" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Interval        int                        `json:"interval" binding:"omitempty,min=1"`
	StartDate       time.Time                  `json:"startDate" binding:"required"`
	Lines           []RecurringLineRequest     `json:"lines" binding:"required,min=2,dive"`
}

// UpdateRecurringRuleRequest defines the patch allowed on a rule.
type UpdateRecurringRuleRequest struct {
	Description *string                     `json:"description"`
	Frequency   *domain.RecurrenceFrequency `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Interval    *int                        `json:"interval" binding:"omitempty,min=1"`
	IsArchived  *bool                       `json:"isArchived"`
}

// RecurringRuleResponse defines the data returned for a rule.
type RecurringRuleResponse struct {
	RuleID          string                     `json:"ruleID"`
	Description     string                     `json:"description"`
	DisplayCurrency string                     `json:"displayCurrency"`
	Frequency       domain.RecurrenceFrequency `json:"frequency"`
	Interval        int                        `json:"interval"`
	StartDate       time.Time                  `json:"startDate"`
	Lines           []RecurringLineRequest     `json:"lines"`
	GeneratedUpTo   time.Time                  `json:"generatedUpTo"`
	IsArchived      bool                       `json:"isArchived"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// GenerateDueResponse reports the projected groups emitted by a generation run.
type GenerateDueResponse struct {
	GeneratedTransactionIDs []string `json:"generatedTransactionIDs"`
}

// ToRecurringRuleResponse converts a domain rule to its DTO.
func ToRecurringRuleResponse(r *domain.RecurringRule) RecurringRuleResponse {
	lines := make([]RecurringLineRequest, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = RecurringLineRequest{
			AccountID:     l.AccountID,
			AmountDisplay: l.AmountDisplay,
			BudgetID:      l.BudgetID,
		}
	}
	return RecurringRuleResponse{
		RuleID:          r.RuleID,
		Description:     r.Description,
		DisplayCurrency: r.DisplayCurrency,
		Frequency:       r.Frequency,
		Interval:        r.Interval,
		StartDate:       r.StartDate,
		Lines:           lines,
		GeneratedUpTo:   r.GeneratedUpTo,
		IsArchived:      r.IsArchived,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
