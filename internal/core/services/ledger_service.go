package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
)

// ledgerService is the atomic read/write/balance-calculation core operating
// over ledger entries grouped by transaction identity.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
	budgetSvc  portssvc.BudgetSvcFacade
	conversion portssvc.ConversionSvcFacade
	cache      *BalanceCache
}

// NewLedgerService creates the ledger engine. The balance cache is shared
// with the sync engine so downloads can invalidate it.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	budgetSvc portssvc.BudgetSvcFacade,
	conversion portssvc.ConversionSvcFacade,
	cache *BalanceCache,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
		budgetSvc:  budgetSvc,
		conversion: conversion,
		cache:      cache,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateTransaction validates and atomically persists a transaction group.
// Rates are frozen here, exactly once; the group is never partially visible.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if len(req.Entries) < 2 {
		return nil, fmt.Errorf("%w: got %d entries", apperrors.ErrInsufficientEntries, len(req.Entries))
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()
	status := req.Status
	if status == "" {
		status = domain.Confirmed
	}

	accounts, budgets, err := s.fetchReferences(ctx, referencedAccountIDs(req.Entries), referencedBudgetIDs(req.Entries))
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LedgerEntry, len(req.Entries))
	for i, line := range req.Entries {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: ID %s", apperrors.ErrAccountNotFound, line.AccountID)
		}
		if acc.IsArchived {
			return nil, fmt.Errorf("%w: account %s is archived", apperrors.ErrValidation, line.AccountID)
		}

		var budgetCcy *string
		if line.BudgetID != nil {
			b, ok := budgets[*line.BudgetID]
			if !ok {
				return nil, fmt.Errorf("%w: ID %s", apperrors.ErrBudgetNotFound, *line.BudgetID)
			}
			budgetCcy = &b.CurrencyCode
		}

		frozen, err := s.conversion.FreezeRates(ctx, req.DisplayCurrency, acc.CurrencyCode, budgetCcy, req.Date)
		if err != nil {
			return nil, err
		}

		entries[i] = domain.LedgerEntry{
			EntryID:              uuid.NewString(),
			TransactionID:        transactionID,
			Idx:                  i,
			Date:                 req.Date,
			Description:          req.Description,
			Status:               status,
			RecurringRuleID:      req.RecurringRuleID,
			DisplayCurrency:      req.DisplayCurrency,
			AmountDisplay:        line.AmountDisplay,
			AccountID:            line.AccountID,
			AmountAccount:        line.AmountDisplay.Mul(frozen.DisplayToAccount),
			RateDisplayToAccount: frozen.DisplayToAccount,
			BudgetID:             line.BudgetID,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if frozen.DisplayToBudget != nil {
			amountBudget := line.AmountDisplay.Mul(*frozen.DisplayToBudget)
			entries[i].AmountBudget = &amountBudget
			entries[i].RateDisplayToBudget = frozen.DisplayToBudget
		}
	}

	if err := violationError(ValidateTransactionGroup(entries, accounts, budgets)); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveTransactionGroup(ctx, entries); err != nil {
		s.LogError(ctx, err, "Failed to save transaction group", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save transaction group: %w", err)
	}

	for _, e := range entries {
		s.cache.Invalidate(e.AccountID)
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", transactionID), slog.Int("entries", len(entries)))
	resp := dto.ToTransactionResponse(transactionID, entries)
	return &resp, nil
}

// GetTransaction returns the group's entries in idx order; an absent group
// yields an empty slice, not an error.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction %s: %w", transactionID, err)
	}
	return entries, nil
}

// ListTransactions retrieves a paginated list of ledger entries.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// UpdateLedgerEntry patches a single entry in place and re-validates the
// whole transaction group, since an edited amount can unbalance it. The
// frozen rates are never recomputed; derived amounts are re-derived from
// them.
func (s *ledgerService) UpdateLedgerEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error) {
	if err := ValidateID(entryID); err != nil {
		return nil, err
	}

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}

	updated := false
	if req.Date != nil {
		entry.Date = *req.Date
		updated = true
	}
	if req.Description != nil {
		entry.Description = *req.Description
		updated = true
	}
	if req.Status != nil {
		entry.Status = *req.Status
		updated = true
	}
	if req.AmountDisplay != nil {
		entry.AmountDisplay = *req.AmountDisplay
		entry.AmountAccount = entry.AmountDisplay.Mul(entry.RateDisplayToAccount)
		if entry.RateDisplayToBudget != nil {
			amountBudget := entry.AmountDisplay.Mul(*entry.RateDisplayToBudget)
			entry.AmountBudget = &amountBudget
		}
		updated = true
	}
	if req.BudgetID != nil {
		if *req.BudgetID == "" {
			entry.BudgetID = nil
			entry.AmountBudget = nil
			entry.RateDisplayToBudget = nil
		} else {
			budget, err := s.budgetSvc.GetBudgetByID(ctx, *req.BudgetID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: ID %s", apperrors.ErrBudgetNotFound, *req.BudgetID)
				}
				return nil, err
			}
			// New attribution freezes its rate at edit time; the entry's own
			// creation-time display→account rate is untouched.
			frozen, err := s.conversion.FreezeRates(ctx, entry.DisplayCurrency, entry.DisplayCurrency, &budget.CurrencyCode, entry.Date)
			if err != nil {
				return nil, err
			}
			entry.BudgetID = req.BudgetID
			entry.RateDisplayToBudget = frozen.DisplayToBudget
			if frozen.DisplayToBudget != nil {
				amountBudget := entry.AmountDisplay.Mul(*frozen.DisplayToBudget)
				entry.AmountBudget = &amountBudget
			}
		}
		updated = true
	}

	if !updated {
		return entry, nil
	}

	entry.Touch(time.Now().UTC())

	// Re-validate the whole group with the patched entry substituted in.
	group, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, entry.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction group %s: %w", entry.TransactionID, err)
	}
	for i := range group {
		if group[i].EntryID == entry.EntryID {
			group[i] = *entry
		}
	}
	accounts, budgets, err := s.fetchReferences(ctx, referencedAccountIDsOf(group), referencedBudgetIDsOf(group))
	if err != nil {
		return nil, err
	}
	if err := violationError(ValidateTransactionGroup(group, accounts, budgets)); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update ledger entry: %w", err)
	}
	s.cache.Invalidate(entry.AccountID)

	s.LogInfo(ctx, "Ledger entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteTransaction removes every entry of the group atomically; an absent
// group is a no-op, not an error.
func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string) error {
	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load transaction group %s: %w", transactionID, err)
	}
	if len(entries) == 0 {
		return nil
	}
	if err := s.ledgerRepo.DeleteTransactionGroup(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction group %s: %w", transactionID, err)
	}
	for _, e := range entries {
		s.cache.Invalidate(e.AccountID)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID), slog.Int("entries", len(entries)))
	return nil
}

// ConfirmTransaction flips a projected group to confirmed.
func (s *ledgerService) ConfirmTransaction(ctx context.Context, transactionID string) error {
	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load transaction group %s: %w", transactionID, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if err := s.ledgerRepo.UpdateEntriesStatus(ctx, transactionID, domain.Confirmed, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to confirm transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction confirmed", slog.String("transaction_id", transactionID))
	return nil
}

// CalculateAccountBalance sums account-currency amounts for an account. The
// unbounded balance is memoized in the cache; bounded queries always hit the
// store.
func (s *ledgerService) CalculateAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	if asOf == nil {
		if balance, ok := s.cache.Get(accountID); ok {
			return balance, nil
		}
	}

	entries, err := s.ledgerRepo.ListEntriesByAccountID(ctx, accountID, nil, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.AmountAccount)
	}

	if asOf == nil {
		s.cache.Set(accountID, balance)
	}
	return balance, nil
}

// GetAccountBalanceHistory produces the cumulative balance series between
// start and end inclusive, beginning from the balance immediately before
// start. Same-day entries aggregate into a single point.
func (s *ledgerService) GetAccountBalanceHistory(ctx context.Context, accountID string, start, end time.Time) (*dto.BalanceHistoryResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListEntriesByAccountID(ctx, accountID, nil, &end)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}

	// Lead with the opening balance so charts can anchor the range start.
	opening := decimal.Zero
	idx := 0
	for ; idx < len(entries) && entries[idx].Date.Before(start); idx++ {
		opening = opening.Add(entries[idx].AmountAccount)
	}
	points := []dto.BalancePoint{{Date: start, Balance: opening}}

	running := opening
	var currentDay time.Time
	haveDay := false
	for _, e := range entries[idx:] {
		day := e.Date.Truncate(24 * time.Hour)
		if haveDay && !day.Equal(currentDay) {
			points = append(points, dto.BalancePoint{Date: currentDay, Balance: running})
		}
		currentDay = day
		haveDay = true
		running = running.Add(e.AmountAccount)
	}
	if haveDay {
		points = append(points, dto.BalancePoint{Date: currentDay, Balance: running})
	}

	return &dto.BalanceHistoryResponse{
		AccountID: accountID,
		Currency:  account.CurrencyCode,
		Points:    points,
	}, nil
}

// CalculateNetWorth rolls up every non-archived account flagged for net
// worth into the display currency. Balances are naturally signed, so
// liability accounts subtract without an extra sign flip.
func (s *ledgerService) CalculateNetWorth(ctx context.Context, displayCurrency string, asOf time.Time) (*dto.NetWorthResponse, error) {
	if err := ValidateCurrencyCode(displayCurrency); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	accounts, err := s.accountSvc.ListAccounts(ctx, false)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	lines := make([]dto.NetWorthLine, 0, len(accounts))
	skipped := make([]string, 0)
	for _, acc := range accounts {
		if !acc.IncludeInNetWorth {
			continue
		}
		balance, err := s.CalculateAccountBalance(ctx, acc.AccountID, &asOf)
		if err != nil {
			return nil, err
		}
		converted, err := s.conversion.ConvertAmount(ctx, balance, acc.CurrencyCode, displayCurrency, asOf)
		if err != nil {
			if errors.Is(err, apperrors.ErrRateNotFound) {
				s.LogWarn(ctx, "Skipping account in net worth, no conversion rate",
					slog.String("account_id", acc.AccountID),
					slog.String("from", acc.CurrencyCode),
					slog.String("to", displayCurrency))
				skipped = append(skipped, acc.AccountID)
				continue
			}
			return nil, err
		}
		total = total.Add(converted)
		lines = append(lines, dto.NetWorthLine{
			AccountID:        acc.AccountID,
			Name:             acc.Name,
			Balance:          balance,
			Currency:         acc.CurrencyCode,
			ConvertedBalance: converted,
		})
	}

	return &dto.NetWorthResponse{
		DisplayCurrency: displayCurrency,
		NetWorth:        total,
		Lines:           lines,
		SkippedAccounts: skipped,
	}, nil
}

// fetchReferences loads the accounts and budgets referenced by a group.
func (s *ledgerService) fetchReferences(ctx context.Context, accountIDs, budgetIDs []string) (map[string]domain.Account, map[string]domain.Budget, error) {
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	budgets := map[string]domain.Budget{}
	if len(budgetIDs) > 0 {
		budgets, err = s.budgetSvc.GetBudgetsByIDs(ctx, budgetIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch budgets: %w", err)
		}
	}
	return accounts, budgets, nil
}

func referencedAccountIDs(lines []dto.CreateEntryRequest) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.AccountID)
	}
	return uniqueStrings(ids)
}

func referencedBudgetIDs(lines []dto.CreateEntryRequest) []string {
	ids := make([]string, 0)
	for _, l := range lines {
		if l.BudgetID != nil {
			ids = append(ids, *l.BudgetID)
		}
	}
	return uniqueStrings(ids)
}

func referencedAccountIDsOf(entries []domain.LedgerEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.AccountID)
	}
	return uniqueStrings(ids)
}

func referencedBudgetIDsOf(entries []domain.LedgerEntry) []string {
	ids := make([]string, 0)
	for _, e := range entries {
		if e.BudgetID != nil {
			ids = append(ids, *e.BudgetID)
		}
	}
	return uniqueStrings(ids)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
