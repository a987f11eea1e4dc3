package repositories

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// FindBudgetsByIDs retrieves multiple budgets keyed by id.
	FindBudgetsByIDs(ctx context.Context, budgetIDs []string) (map[string]domain.Budget, error)

	// ListBudgets retrieves all budgets, optionally including archived ones.
	ListBudgets(ctx context.Context, includeArchived bool) ([]domain.Budget, error)

	// FindBudgetsUpdatedSince retrieves budgets with updated_at strictly
	// greater than the given checkpoint, ascending by updated_at.
	FindBudgetsUpdatedSince(ctx context.Context, since time.Time) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget replaces a stored budget in place.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget hard-deletes a budget. Callers must have verified that no
	// ledger entry references it.
	DeleteBudget(ctx context.Context, budgetID string) error

	// UpsertBudget inserts or replaces a budget preserving its timestamps.
	UpsertBudget(ctx context.Context, budget domain.Budget) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
