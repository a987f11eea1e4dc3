package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	"github.com/triplebook/triplebook/internal/models"
	"github.com/triplebook/triplebook/internal/utils/mapping"
)

type SQLiteBudgetRepository struct {
	BaseRepository
}

// newSQLiteBudgetRepository creates a new repository for budget data.
func newSQLiteBudgetRepository(db *sql.DB) portsrepo.BudgetRepositoryFacade {
	return &SQLiteBudgetRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.BudgetRepositoryFacade = (*SQLiteBudgetRepository)(nil)

const budgetColumns = `budget_id, name, currency_code, period, target_amount, is_archived, created_at, updated_at`

func scanBudget(row interface{ Scan(...any) error }) (models.Budget, error) {
	var m models.Budget
	var target decimal.NullDecimal
	err := row.Scan(
		&m.BudgetID,
		&m.Name,
		&m.CurrencyCode,
		&m.Period,
		&target,
		&m.IsArchived,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if target.Valid {
		m.TargetAmount = &target.Decimal
	}
	return m, err
}

func nullTarget(t *decimal.Decimal) decimal.NullDecimal {
	if t == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *t, Valid: true}
}

func (r *SQLiteBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.BudgetID, m.Name, m.CurrencyCode, m.Period,
		nullTarget(m.TargetAmount), m.IsArchived, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, m.BudgetID)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}
	return nil
}

func (r *SQLiteBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = ?;`
	m, err := scanBudget(r.DB.QueryRowContext(ctx, query, budgetID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

func (r *SQLiteBudgetRepository) FindBudgetsByIDs(ctx context.Context, budgetIDs []string) (map[string]domain.Budget, error) {
	if len(budgetIDs) == 0 {
		return map[string]domain.Budget{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(budgetIDs)), ",")
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id IN (` + placeholders + `);`
	args := make([]any, len(budgetIDs))
	for i, id := range budgetIDs {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Budget, len(budgetIDs))
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		result[m.BudgetID] = mapping.ToDomainBudget(m)
	}
	return result, rows.Err()
}

func (r *SQLiteBudgetRepository) ListBudgets(ctx context.Context, includeArchived bool) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY name;`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, mapping.ToDomainBudget(m))
	}
	return budgets, rows.Err()
}

func (r *SQLiteBudgetRepository) FindBudgetsUpdatedSince(ctx context.Context, since time.Time) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE updated_at > ? ORDER BY updated_at;`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, mapping.ToDomainBudget(m))
	}
	return budgets, rows.Err()
}

func (r *SQLiteBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET name = ?, currency_code = ?, period = ?, target_amount = ?, is_archived = ?, updated_at = ?
		WHERE budget_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.Name, m.CurrencyCode, m.Period, nullTarget(m.TargetAmount),
		m.IsArchived, m.UpdatedAt,
		m.BudgetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", m.BudgetID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SQLiteBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM budgets WHERE budget_id = ?;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SQLiteBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (budget_id) DO UPDATE SET
			name = excluded.name,
			currency_code = excluded.currency_code,
			period = excluded.period,
			target_amount = excluded.target_amount,
			is_archived = excluded.is_archived,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at;
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.BudgetID, m.Name, m.CurrencyCode, m.Period,
		nullTarget(m.TargetAmount), m.IsArchived, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget %s: %w", m.BudgetID, err)
	}
	return nil
}
