package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	"github.com/triplebook/triplebook/internal/models"
	"github.com/triplebook/triplebook/internal/utils/mapping"
)

type SQLiteAccountRepository struct {
	BaseRepository
}

// newSQLiteAccountRepository creates a new repository for account data.
func newSQLiteAccountRepository(db *sql.DB) portsrepo.AccountRepositoryFacade {
	return &SQLiteAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AccountRepositoryFacade = (*SQLiteAccountRepository)(nil)

const accountColumns = `account_id, name, account_type, currency_code, include_in_net_worth, is_system_default, is_archived, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.IncludeInNetWorth,
		&m.IsSystemDefault,
		&m.IsArchived,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.AccountID, m.Name, m.AccountType, m.CurrencyCode,
		m.IncludeInNetWorth, m.IsSystemDefault, m.IsArchived,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

func (r *SQLiteAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ?;`
	m, err := scanAccount(r.DB.QueryRowContext(ctx, query, accountID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *SQLiteAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(accountIDs)), ",")
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id IN (` + placeholders + `);`
	args := make([]any, len(accountIDs))
	for i, id := range accountIDs {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return result, rows.Err()
}

func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY name;`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	return accounts, rows.Err()
}

func (r *SQLiteAccountRepository) FindAccountsUpdatedSince(ctx context.Context, since time.Time) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE updated_at > ? ORDER BY updated_at;`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	return accounts, rows.Err()
}

func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = ?, account_type = ?, currency_code = ?, include_in_net_worth = ?, is_system_default = ?, is_archived = ?, updated_at = ?
		WHERE account_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.Name, m.AccountType, m.CurrencyCode, m.IncludeInNetWorth,
		m.IsSystemDefault, m.IsArchived, m.UpdatedAt,
		m.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SQLiteAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM accounts WHERE account_id = ?;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpsertAccount writes an account keeping whatever timestamps it carries,
// as required when a remote record wins LWW.
func (r *SQLiteAccountRepository) UpsertAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id) DO UPDATE SET
			name = excluded.name,
			account_type = excluded.account_type,
			currency_code = excluded.currency_code,
			include_in_net_worth = excluded.include_in_net_worth,
			is_system_default = excluded.is_system_default,
			is_archived = excluded.is_archived,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at;
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.AccountID, m.Name, m.AccountType, m.CurrencyCode,
		m.IncludeInNetWorth, m.IsSystemDefault, m.IsArchived,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", m.AccountID, err)
	}
	return nil
}
