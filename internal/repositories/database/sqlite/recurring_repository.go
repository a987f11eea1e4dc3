package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	"github.com/triplebook/triplebook/internal/models"
	"github.com/triplebook/triplebook/internal/utils/mapping"
)

type SQLiteRecurringRepository struct {
	BaseRepository
}

// newSQLiteRecurringRepository creates a new repository for recurring rules.
func newSQLiteRecurringRepository(db *sql.DB) portsrepo.RecurringRepositoryFacade {
	return &SQLiteRecurringRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.RecurringRepositoryFacade = (*SQLiteRecurringRepository)(nil)

const ruleColumns = `rule_id, description, display_currency, frequency, interval, start_date, lines_json, generated_up_to, is_archived, created_at, updated_at`

func scanRule(row interface{ Scan(...any) error }) (models.RecurringRule, error) {
	var m models.RecurringRule
	err := row.Scan(
		&m.RuleID,
		&m.Description,
		&m.DisplayCurrency,
		&m.Frequency,
		&m.Interval,
		&m.StartDate,
		&m.LinesJSON,
		&m.GeneratedUpTo,
		&m.IsArchived,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *SQLiteRecurringRepository) SaveRule(ctx context.Context, rule domain.RecurringRule) error {
	m, err := mapping.ToModelRecurringRule(rule)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO recurring_rules (` + ruleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = r.DB.ExecContext(ctx, query,
		m.RuleID, m.Description, m.DisplayCurrency, m.Frequency, m.Interval,
		m.StartDate, m.LinesJSON, m.GeneratedUpTo, m.IsArchived,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: rule with ID %s already exists", apperrors.ErrDuplicate, m.RuleID)
		}
		return fmt.Errorf("failed to save recurring rule %s: %w", m.RuleID, err)
	}
	return nil
}

func (r *SQLiteRecurringRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE rule_id = ?;`
	m, err := scanRule(r.DB.QueryRowContext(ctx, query, ruleID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	rule, err := mapping.ToDomainRecurringRule(m)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *SQLiteRecurringRepository) ListRules(ctx context.Context, includeArchived bool) ([]domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY description;`
	return r.queryRules(ctx, query)
}

func (r *SQLiteRecurringRepository) FindRulesUpdatedSince(ctx context.Context, since time.Time) ([]domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE updated_at > ? ORDER BY updated_at;`
	return r.queryRules(ctx, query, since)
}

func (r *SQLiteRecurringRepository) UpdateRule(ctx context.Context, rule domain.RecurringRule) error {
	m, err := mapping.ToModelRecurringRule(rule)
	if err != nil {
		return err
	}
	query := `
		UPDATE recurring_rules
		SET description = ?, display_currency = ?, frequency = ?, interval = ?, start_date = ?, lines_json = ?, generated_up_to = ?, is_archived = ?, updated_at = ?
		WHERE rule_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.Description, m.DisplayCurrency, m.Frequency, m.Interval,
		m.StartDate, m.LinesJSON, m.GeneratedUpTo, m.IsArchived, m.UpdatedAt,
		m.RuleID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring rule %s: %w", m.RuleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SQLiteRecurringRepository) UpsertRule(ctx context.Context, rule domain.RecurringRule) error {
	m, err := mapping.ToModelRecurringRule(rule)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO recurring_rules (` + ruleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (rule_id) DO UPDATE SET
			description = excluded.description,
			display_currency = excluded.display_currency,
			frequency = excluded.frequency,
			interval = excluded.interval,
			start_date = excluded.start_date,
			lines_json = excluded.lines_json,
			generated_up_to = excluded.generated_up_to,
			is_archived = excluded.is_archived,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at;
	`
	_, err = r.DB.ExecContext(ctx, query,
		m.RuleID, m.Description, m.DisplayCurrency, m.Frequency, m.Interval,
		m.StartDate, m.LinesJSON, m.GeneratedUpTo, m.IsArchived,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert recurring rule %s: %w", m.RuleID, err)
	}
	return nil
}

func (r *SQLiteRecurringRepository) queryRules(ctx context.Context, query string, args ...any) ([]domain.RecurringRule, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.RecurringRule, 0)
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		rule, err := mapping.ToDomainRecurringRule(m)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
