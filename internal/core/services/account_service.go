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

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
}

// NewAccountService creates a new account service. The ledger reader guards
// hard deletion of referenced accounts.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerReader) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	includeInNetWorth := true
	if req.IncludeInNetWorth != nil {
		includeInNetWorth = *req.IncludeInNetWorth
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:         uuid.NewString(),
		Name:              req.Name,
		AccountType:       req.AccountType,
		CurrencyCode:      req.CurrencyCode,
		IncludeInNetWorth: includeInNetWorth,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := ValidateAccountFields(account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount patches mutable fields. Currency and account type are
// immutable once entries may reference frozen rates derived from them.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil && *req.Name != account.Name {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = *req.Name
		updated = true
	}
	if req.IncludeInNetWorth != nil && *req.IncludeInNetWorth != account.IncludeInNetWorth {
		account.IncludeInNetWorth = *req.IncludeInNetWorth
		updated = true
	}
	if req.IsArchived != nil && *req.IsArchived != account.IsArchived {
		account.IsArchived = *req.IsArchived
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.Touch(time.Now().UTC())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount hard-deletes only when no ledger entry references the
// account; otherwise it fails with a conflict and the caller should archive.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsSystemDefault {
		return fmt.Errorf("%w: system default accounts cannot be deleted", apperrors.ErrValidation)
	}

	count, err := s.ledgerRepo.CountEntriesByAccountID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count entries for account %s: %w", accountID, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account %s has %d ledger entries, archive it instead", apperrors.ErrConflict, accountID, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
