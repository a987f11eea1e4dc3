package services

import (
	"context"

	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/dto"
)

// AccountSvcFacade defines the account lifecycle operations.
type AccountSvcFacade interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by id.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts, optionally including archived ones.
	ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error)

	// UpdateAccount patches mutable account fields; currency never changes.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount hard-deletes an account with no referencing entries and
	// fails with a conflict when entries exist; archive instead.
	DeleteAccount(ctx context.Context, accountID string) error
}
