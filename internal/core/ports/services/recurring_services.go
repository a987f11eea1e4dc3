package services

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/dto"
)

// RecurringSvcFacade manages recurring rules and projection generation.
type RecurringSvcFacade interface {
	// CreateRule validates and persists a new recurring rule.
	CreateRule(ctx context.Context, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error)

	// GetRuleByID retrieves a specific rule.
	GetRuleByID(ctx context.Context, ruleID string) (*domain.RecurringRule, error)

	// ListRules retrieves all rules, optionally including archived ones.
	ListRules(ctx context.Context, includeArchived bool) ([]domain.RecurringRule, error)

	// UpdateRule patches mutable rule fields.
	UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRecurringRuleRequest) (*domain.RecurringRule, error)

	// GenerateDue emits projected transaction groups for every occurrence due
	// through asOf, advancing each rule's generated_up_to checkpoint.
	GenerateDue(ctx context.Context, asOf time.Time) (*dto.GenerateDueResponse, error)
}
