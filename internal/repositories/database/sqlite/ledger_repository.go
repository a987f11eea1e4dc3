package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	"github.com/triplebook/triplebook/internal/models"
	"github.com/triplebook/triplebook/internal/utils/mapping"
	"github.com/triplebook/triplebook/internal/utils/pagination"
)

type SQLiteLedgerRepository struct {
	BaseRepository
}

// newSQLiteLedgerRepository creates a new repository for ledger entry data.
func newSQLiteLedgerRepository(db *sql.DB) portsrepo.LedgerRepositoryFacade {
	return &SQLiteLedgerRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*SQLiteLedgerRepository)(nil)

const entryColumns = `entry_id, transaction_id, idx, date, description, status, recurring_rule_id, display_currency, amount_display, account_id, amount_account, rate_display_to_account, budget_id, amount_budget, rate_display_to_budget, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var ruleID sql.NullString
	var budgetID sql.NullString
	var amountBudget, rateBudget decimal.NullDecimal

	err := row.Scan(
		&m.EntryID,
		&m.TransactionID,
		&m.Idx,
		&m.Date,
		&m.Description,
		&m.Status,
		&ruleID,
		&m.DisplayCurrency,
		&m.AmountDisplay,
		&m.AccountID,
		&m.AmountAccount,
		&m.RateDisplayToAccount,
		&budgetID,
		&amountBudget,
		&rateBudget,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return m, err
	}
	if ruleID.Valid {
		m.RecurringRuleID = &ruleID.String
	}
	if budgetID.Valid {
		m.BudgetID = &budgetID.String
	}
	if amountBudget.Valid {
		m.AmountBudget = &amountBudget.Decimal
	}
	if rateBudget.Valid {
		m.RateDisplayToBudget = &rateBudget.Decimal
	}
	return m, nil
}

func entryArgs(m models.LedgerEntry) []any {
	return []any{
		m.EntryID, m.TransactionID, m.Idx, m.Date, m.Description, m.Status,
		nullString(m.RecurringRuleID),
		m.DisplayCurrency, m.AmountDisplay,
		m.AccountID, m.AmountAccount, m.RateDisplayToAccount,
		nullString(m.BudgetID), nullDecimal(m.AmountBudget), nullDecimal(m.RateDisplayToBudget),
		m.CreatedAt, m.UpdatedAt,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// SaveTransactionGroup persists every entry of the group in one database
// transaction so the group is never partially visible.
func (r *SQLiteLedgerRepository) SaveTransactionGroup(ctx context.Context, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	query := `INSERT INTO ledger_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	for _, e := range entries {
		m := mapping.ToModelLedgerEntry(e)
		if _, err := tx.ExecContext(ctx, query, entryArgs(m)...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
			}
			return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction group: %w", err)
	}
	return nil
}

func (r *SQLiteLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = ?;`
	m, err := scanEntry(r.DB.QueryRowContext(ctx, query, entryID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

func (r *SQLiteLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE transaction_id = ? ORDER BY idx;`
	return r.queryEntries(ctx, query, transactionID)
}

func (r *SQLiteLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = ?`
	args := []any{accountID}
	if from != nil {
		query += ` AND date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND date <= ?`
		args = append(args, *to)
	}
	query += ` ORDER BY date, created_at;`
	return r.queryEntries(ctx, query, args...)
}

func (r *SQLiteLedgerRepository) ListEntriesByBudgetID(ctx context.Context, budgetID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE budget_id = ?`
	args := []any{budgetID}
	if from != nil {
		query += ` AND date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND date <= ?`
		args = append(args, *to)
	}
	query += ` ORDER BY date, created_at;`
	return r.queryEntries(ctx, query, args...)
}

// ListEntries pages through all entries newest first using a (date,
// created_at) keyset token.
func (r *SQLiteLedgerRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (date < ?) OR (date = ? AND created_at < ?)`
		args = append(args, date, date, createdAt)
	}
	query += ` ORDER BY date DESC, created_at DESC LIMIT ?;`
	args = append(args, limit+1)

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

func (r *SQLiteLedgerRepository) CountEntriesByAccountID(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE account_id = ?;`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for account %s: %w", accountID, err)
	}
	return count, nil
}

func (r *SQLiteLedgerRepository) CountEntriesByBudgetID(ctx context.Context, budgetID string) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE budget_id = ?;`, budgetID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for budget %s: %w", budgetID, err)
	}
	return count, nil
}

func (r *SQLiteLedgerRepository) FindEntriesUpdatedSince(ctx context.Context, since time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE updated_at > ? ORDER BY updated_at;`
	return r.queryEntries(ctx, query, since)
}

func (r *SQLiteLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		UPDATE ledger_entries
		SET date = ?, description = ?, status = ?, amount_display = ?, amount_account = ?, rate_display_to_account = ?, budget_id = ?, amount_budget = ?, rate_display_to_budget = ?, updated_at = ?
		WHERE entry_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.Date, m.Description, m.Status,
		m.AmountDisplay, m.AmountAccount, m.RateDisplayToAccount,
		nullString(m.BudgetID), nullDecimal(m.AmountBudget), nullDecimal(m.RateDisplayToBudget),
		m.UpdatedAt,
		m.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry %s: %w", m.EntryID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SQLiteLedgerRepository) UpdateEntriesStatus(ctx context.Context, transactionID string, status domain.EntryStatus, updatedAt time.Time) error {
	query := `UPDATE ledger_entries SET status = ?, updated_at = ? WHERE transaction_id = ?;`
	res, err := r.DB.ExecContext(ctx, query, string(status), updatedAt, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SQLiteLedgerRepository) DeleteTransactionGroup(ctx context.Context, transactionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM ledger_entries WHERE transaction_id = ?;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction group %s: %w", transactionID, err)
	}
	return nil
}

func (r *SQLiteLedgerRepository) UpsertEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entry_id) DO UPDATE SET
			transaction_id = excluded.transaction_id,
			idx = excluded.idx,
			date = excluded.date,
			description = excluded.description,
			status = excluded.status,
			recurring_rule_id = excluded.recurring_rule_id,
			display_currency = excluded.display_currency,
			amount_display = excluded.amount_display,
			account_id = excluded.account_id,
			amount_account = excluded.amount_account,
			rate_display_to_account = excluded.rate_display_to_account,
			budget_id = excluded.budget_id,
			amount_budget = excluded.amount_budget,
			rate_display_to_budget = excluded.rate_display_to_budget,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at;
	`
	if _, err := r.DB.ExecContext(ctx, query, entryArgs(m)...); err != nil {
		return fmt.Errorf("failed to upsert ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

func (r *SQLiteLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	return entries, rows.Err()
}
