package services

import (
	"context"

	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/dto"
)

// BudgetSvcFacade defines the budget lifecycle operations.
type BudgetSvcFacade interface {
	// CreateBudget validates and persists a new budget.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error)

	// GetBudgetByID retrieves a specific budget.
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// GetBudgetsByIDs retrieves multiple budgets keyed by id.
	GetBudgetsByIDs(ctx context.Context, budgetIDs []string) (map[string]domain.Budget, error)

	// ListBudgets retrieves all budgets, optionally including archived ones.
	ListBudgets(ctx context.Context, includeArchived bool) ([]domain.Budget, error)

	// UpdateBudget patches mutable budget fields; currency never changes.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)

	// DeleteBudget hard-deletes a budget with no referencing entries and
	// fails with a conflict when entries exist.
	DeleteBudget(ctx context.Context, budgetID string) error
}
