package repositories

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// RecurringReader defines read operations for recurring rules.
type RecurringReader interface {
	// FindRuleByID retrieves a specific rule by its unique identifier.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.RecurringRule, error)

	// ListRules retrieves all rules, optionally including archived ones.
	ListRules(ctx context.Context, includeArchived bool) ([]domain.RecurringRule, error)

	// FindRulesUpdatedSince retrieves rules with updated_at strictly greater
	// than the given checkpoint, ascending by updated_at.
	FindRulesUpdatedSince(ctx context.Context, since time.Time) ([]domain.RecurringRule, error)
}

// RecurringWriter defines write operations for recurring rules.
type RecurringWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.RecurringRule) error

	// UpdateRule replaces a stored rule in place.
	UpdateRule(ctx context.Context, rule domain.RecurringRule) error

	// UpsertRule inserts or replaces a rule preserving its timestamps.
	UpsertRule(ctx context.Context, rule domain.RecurringRule) error
}

// RecurringRepositoryFacade combines all recurring rule repository interfaces.
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}
