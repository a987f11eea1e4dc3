package sqlite

import (
	"database/sql"

	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every SQLite repository over one database handle.
func NewRepositoryProvider(db *sql.DB) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LedgerRepo:    newSQLiteLedgerRepository(db),
		AccountRepo:   newSQLiteAccountRepository(db),
		BudgetRepo:    newSQLiteBudgetRepository(db),
		RateRepo:      newSQLiteExchangeRateRepository(db),
		RecurringRepo: newSQLiteRecurringRepository(db),
		SyncRepo:      newSQLiteSyncRepository(db),
	}
}
