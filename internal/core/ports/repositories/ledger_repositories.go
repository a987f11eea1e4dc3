package repositories

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// FindEntryByID retrieves a single ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByTransactionID retrieves all entries of a transaction group,
	// ordered by idx. An absent group yields an empty slice, not an error.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccountID retrieves entries for an account, date-ordered,
	// optionally bounded by an inclusive date range.
	ListEntriesByAccountID(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesByBudgetID retrieves entries attributed to a budget,
	// date-ordered, optionally bounded by an inclusive date range.
	ListEntriesByBudgetID(ctx context.Context, budgetID string, from, to *time.Time) ([]domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of all entries, newest first,
	// using token-based pagination.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// CountEntriesByAccountID counts entries referencing an account.
	CountEntriesByAccountID(ctx context.Context, accountID string) (int64, error)

	// CountEntriesByBudgetID counts entries referencing a budget.
	CountEntriesByBudgetID(ctx context.Context, budgetID string) (int64, error)

	// FindEntriesUpdatedSince retrieves entries with updated_at strictly
	// greater than the given checkpoint, ascending by updated_at.
	FindEntriesUpdatedSince(ctx context.Context, since time.Time) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries. Multi-entry
// operations are atomic: either every entry of the group is written or none.
type LedgerWriter interface {
	// SaveTransactionGroup persists a complete transaction group atomically.
	SaveTransactionGroup(ctx context.Context, entries []domain.LedgerEntry) error

	// UpdateEntry replaces a stored entry in place.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntriesStatus flips the status of every entry in a transaction
	// group atomically, bumping updated_at.
	UpdateEntriesStatus(ctx context.Context, transactionID string, status domain.EntryStatus, updatedAt time.Time) error

	// DeleteTransactionGroup removes every entry of the group atomically.
	// Deleting an absent group is a no-op.
	DeleteTransactionGroup(ctx context.Context, transactionID string) error

	// UpsertEntry inserts or replaces an entry preserving the timestamps it
	// carries. Used by the sync engine when a remote record wins LWW.
	UpsertEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
