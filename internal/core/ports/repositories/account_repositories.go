package repositories

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id. Missing ids
	// are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts, optionally including archived ones.
	ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error)

	// FindAccountsUpdatedSince retrieves accounts with updated_at strictly
	// greater than the given checkpoint, ascending by updated_at.
	FindAccountsUpdatedSince(ctx context.Context, since time.Time) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount replaces a stored account in place.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount hard-deletes an account. Callers must have verified that
	// no ledger entry references it.
	DeleteAccount(ctx context.Context, accountID string) error

	// UpsertAccount inserts or replaces an account preserving its timestamps.
	// Used by the sync engine when a remote record wins LWW.
	UpsertAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
