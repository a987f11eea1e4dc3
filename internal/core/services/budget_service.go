package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
)

type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	ledgerRepo portsrepo.LedgerReader
}

// NewBudgetService creates a new budget service. The ledger reader guards
// hard deletion of referenced budgets.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, ledgerRepo portsrepo.LedgerReader) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: budget name cannot be empty", apperrors.ErrValidation)
	}
	if err := ValidateCurrencyCode(req.CurrencyCode); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !domain.ValidBudgetPeriod(req.Period) {
		return nil, fmt.Errorf("%w: invalid budget period %q", apperrors.ErrValidation, req.Period)
	}
	if req.TargetAmount != nil && req.TargetAmount.Sign() < 0 {
		return nil, fmt.Errorf("%w: target amount cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Period:       req.Period,
		TargetAmount: req.TargetAmount,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID), slog.String("name", budget.Name))
	return &budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	return budget, nil
}

func (s *budgetService) GetBudgetsByIDs(ctx context.Context, budgetIDs []string) (map[string]domain.Budget, error) {
	budgets, err := s.budgetRepo.FindBudgetsByIDs(ctx, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, includeArchived bool) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}

	updated := false
	if req.Name != nil && *req.Name != budget.Name {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: budget name cannot be empty", apperrors.ErrValidation)
		}
		budget.Name = *req.Name
		updated = true
	}
	if req.Period != nil && *req.Period != budget.Period {
		if !domain.ValidBudgetPeriod(*req.Period) {
			return nil, fmt.Errorf("%w: invalid budget period %q", apperrors.ErrValidation, *req.Period)
		}
		budget.Period = *req.Period
		updated = true
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.Sign() < 0 {
			return nil, fmt.Errorf("%w: target amount cannot be negative", apperrors.ErrValidation)
		}
		budget.TargetAmount = req.TargetAmount
		updated = true
	}
	if req.IsArchived != nil && *req.IsArchived != budget.IsArchived {
		budget.IsArchived = *req.IsArchived
		updated = true
	}

	if !updated {
		return budget, nil
	}

	budget.Touch(time.Now().UTC())
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	s.LogInfo(ctx, "Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

// DeleteBudget hard-deletes only when no ledger entry attributes to the
// budget; otherwise it fails with a conflict.
func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string) error {
	if _, err := s.budgetRepo.FindBudgetByID(ctx, budgetID); err != nil {
		return fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}

	count, err := s.ledgerRepo.CountEntriesByBudgetID(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("failed to count entries for budget %s: %w", budgetID, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: budget %s has %d ledger entries, archive it instead", apperrors.ErrConflict, budgetID, count)
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
