package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/core/ports"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
)

// uploadBatchSize caps the record count of one PutBatch call for collections
// without a stronger grouping requirement.
const uploadBatchSize = 100

// collectionSyncer adapts one replicated entity type to the sync engine.
// pendingUploads returns local changes since the checkpoint already shaped
// into the batches they must upload as. applyRemote resolves one downloaded
// record by LWW against the local copy.
type collectionSyncer interface {
	collection() domain.Collection

	pendingUploads(ctx context.Context, since time.Time) ([][]ports.RemoteRecord, error)

	// applyRemote returns whether the record was applied locally and whether
	// applying it discarded an existing local version.
	applyRemote(ctx context.Context, rec ports.RemoteRecord) (applied, overwritten bool, err error)
}

// chunkRecords splits records into batches of at most uploadBatchSize.
func chunkRecords(records []ports.RemoteRecord) [][]ports.RemoteRecord {
	if len(records) == 0 {
		return nil
	}
	batches := make([][]ports.RemoteRecord, 0, (len(records)+uploadBatchSize-1)/uploadBatchSize)
	for start := 0; start < len(records); start += uploadBatchSize {
		end := start + uploadBatchSize
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}

func marshalRecord(id string, updatedAt time.Time, entity any) (ports.RemoteRecord, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return ports.RemoteRecord{}, fmt.Errorf("marshaling record %s: %w", id, err)
	}
	return ports.RemoteRecord{ID: id, UpdatedAt: updatedAt, Data: data}, nil
}

// remoteWins implements the LWW rule: the remote copy wins only with a
// strictly greater updated_at; an equal timestamp retains the local copy.
func remoteWins(remote, local time.Time) bool {
	return remote.After(local)
}

// entrySyncer replicates ledger entries. Uploads are batched per transaction
// group so the remote store never holds a partial group.
type entrySyncer struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	cache      *BalanceCache
}

func (s *entrySyncer) collection() domain.Collection { return domain.CollectionEntries }

func (s *entrySyncer) pendingUploads(ctx context.Context, since time.Time) ([][]ports.RemoteRecord, error) {
	entries, err := s.ledgerRepo.FindEntriesUpdatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	// Group per transaction, preserving first-seen order.
	order := make([]string, 0)
	groups := make(map[string][]ports.RemoteRecord)
	for _, e := range entries {
		rec, err := marshalRecord(e.EntryID, e.UpdatedAt, e)
		if err != nil {
			return nil, err
		}
		if _, ok := groups[e.TransactionID]; !ok {
			order = append(order, e.TransactionID)
		}
		groups[e.TransactionID] = append(groups[e.TransactionID], rec)
	}

	batches := make([][]ports.RemoteRecord, 0, len(order))
	for _, txID := range order {
		batches = append(batches, groups[txID])
	}
	return batches, nil
}

func (s *entrySyncer) applyRemote(ctx context.Context, rec ports.RemoteRecord) (bool, bool, error) {
	var entry domain.LedgerEntry
	if err := json.Unmarshal(rec.Data, &entry); err != nil {
		return false, false, fmt.Errorf("unmarshaling ledger entry %s: %w", rec.ID, err)
	}

	local, err := s.ledgerRepo.FindEntryByID(ctx, rec.ID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := s.ledgerRepo.UpsertEntry(ctx, entry); err != nil {
			return false, false, err
		}
		s.cache.Invalidate(entry.AccountID)
		return true, false, nil
	case err != nil:
		return false, false, err
	}

	if !remoteWins(entry.UpdatedAt, local.UpdatedAt) {
		return false, false, nil
	}
	if err := s.ledgerRepo.UpsertEntry(ctx, entry); err != nil {
		return false, false, err
	}
	s.cache.Invalidate(local.AccountID)
	s.cache.Invalidate(entry.AccountID)
	return true, true, nil
}

type accountSyncer struct {
	accountRepo portsrepo.AccountRepositoryFacade
	cache       *BalanceCache
}

func (s *accountSyncer) collection() domain.Collection { return domain.CollectionAccounts }

func (s *accountSyncer) pendingUploads(ctx context.Context, since time.Time) ([][]ports.RemoteRecord, error) {
	accounts, err := s.accountRepo.FindAccountsUpdatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	records := make([]ports.RemoteRecord, 0, len(accounts))
	for _, a := range accounts {
		rec, err := marshalRecord(a.AccountID, a.UpdatedAt, a)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return chunkRecords(records), nil
}

func (s *accountSyncer) applyRemote(ctx context.Context, rec ports.RemoteRecord) (bool, bool, error) {
	var account domain.Account
	if err := json.Unmarshal(rec.Data, &account); err != nil {
		return false, false, fmt.Errorf("unmarshaling account %s: %w", rec.ID, err)
	}

	local, err := s.accountRepo.FindAccountByID(ctx, rec.ID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := s.accountRepo.UpsertAccount(ctx, account); err != nil {
			return false, false, err
		}
		return true, false, nil
	case err != nil:
		return false, false, err
	}

	if !remoteWins(account.UpdatedAt, local.UpdatedAt) {
		return false, false, nil
	}
	if err := s.accountRepo.UpsertAccount(ctx, account); err != nil {
		return false, false, err
	}
	s.cache.Invalidate(account.AccountID)
	return true, true, nil
}

type budgetSyncer struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

func (s *budgetSyncer) collection() domain.Collection { return domain.CollectionBudgets }

func (s *budgetSyncer) pendingUploads(ctx context.Context, since time.Time) ([][]ports.RemoteRecord, error) {
	budgets, err := s.budgetRepo.FindBudgetsUpdatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	records := make([]ports.RemoteRecord, 0, len(budgets))
	for _, b := range budgets {
		rec, err := marshalRecord(b.BudgetID, b.UpdatedAt, b)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return chunkRecords(records), nil
}

func (s *budgetSyncer) applyRemote(ctx context.Context, rec ports.RemoteRecord) (bool, bool, error) {
	var budget domain.Budget
	if err := json.Unmarshal(rec.Data, &budget); err != nil {
		return false, false, fmt.Errorf("unmarshaling budget %s: %w", rec.ID, err)
	}

	local, err := s.budgetRepo.FindBudgetByID(ctx, rec.ID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := s.budgetRepo.UpsertBudget(ctx, budget); err != nil {
			return false, false, err
		}
		return true, false, nil
	case err != nil:
		return false, false, err
	}

	if !remoteWins(budget.UpdatedAt, local.UpdatedAt) {
		return false, false, nil
	}
	if err := s.budgetRepo.UpsertBudget(ctx, budget); err != nil {
		return false, false, err
	}
	return true, true, nil
}

type rateSyncer struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

func (s *rateSyncer) collection() domain.Collection { return domain.CollectionRates }

func (s *rateSyncer) pendingUploads(ctx context.Context, since time.Time) ([][]ports.RemoteRecord, error) {
	rates, err := s.rateRepo.FindRatesUpdatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	records := make([]ports.RemoteRecord, 0, len(rates))
	for _, r := range rates {
		rec, err := marshalRecord(r.ExchangeRateID, r.UpdatedAt, r)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return chunkRecords(records), nil
}

func (s *rateSyncer) applyRemote(ctx context.Context, rec ports.RemoteRecord) (bool, bool, error) {
	var rate domain.ExchangeRate
	if err := json.Unmarshal(rec.Data, &rate); err != nil {
		return false, false, fmt.Errorf("unmarshaling exchange rate %s: %w", rec.ID, err)
	}

	local, err := s.rateRepo.FindRateByID(ctx, rec.ID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
			return false, false, err
		}
		return true, false, nil
	case err != nil:
		return false, false, err
	}

	if !remoteWins(rate.UpdatedAt, local.UpdatedAt) {
		return false, false, nil
	}
	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		return false, false, err
	}
	return true, true, nil
}

type ruleSyncer struct {
	recurringRepo portsrepo.RecurringRepositoryFacade
}

func (s *ruleSyncer) collection() domain.Collection { return domain.CollectionRules }

func (s *ruleSyncer) pendingUploads(ctx context.Context, since time.Time) ([][]ports.RemoteRecord, error) {
	rules, err := s.recurringRepo.FindRulesUpdatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	records := make([]ports.RemoteRecord, 0, len(rules))
	for _, r := range rules {
		rec, err := marshalRecord(r.RuleID, r.UpdatedAt, r)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return chunkRecords(records), nil
}

func (s *ruleSyncer) applyRemote(ctx context.Context, rec ports.RemoteRecord) (bool, bool, error) {
	var rule domain.RecurringRule
	if err := json.Unmarshal(rec.Data, &rule); err != nil {
		return false, false, fmt.Errorf("unmarshaling recurring rule %s: %w", rec.ID, err)
	}

	local, err := s.recurringRepo.FindRuleByID(ctx, rec.ID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if err := s.recurringRepo.UpsertRule(ctx, rule); err != nil {
			return false, false, err
		}
		return true, false, nil
	case err != nil:
		return false, false, err
	}

	if !remoteWins(rule.UpdatedAt, local.UpdatedAt) {
		return false, false, nil
	}
	if err := s.recurringRepo.UpsertRule(ctx, rule); err != nil {
		return false, false, err
	}
	return true, true, nil
}
