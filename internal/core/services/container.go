package services

import (
	"github.com/triplebook/triplebook/internal/core/ports"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
)

// NewServiceContainer wires every service over the repository provider and
// the remote store. The balance cache is created here and shared between the
// ledger engine and the sync engine, which both write through it.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, remote ports.RemoteStore) *portssvc.ServiceContainer {
	cache := NewBalanceCache()

	accountSvc := NewAccountService(repos.AccountRepo, repos.LedgerRepo)
	budgetSvc := NewBudgetService(repos.BudgetRepo, repos.LedgerRepo)
	rateSvc := NewExchangeRateService(repos.RateRepo)
	conversionSvc := NewConversionService(rateSvc)
	ledgerSvc := NewLedgerService(repos.LedgerRepo, accountSvc, budgetSvc, conversionSvc, cache)
	builderSvc := NewBuilderService(ledgerSvc)
	recurringSvc := NewRecurringService(repos.RecurringRepo, ledgerSvc)
	syncSvc := NewSyncService(
		remote,
		repos.SyncRepo,
		repos.LedgerRepo,
		repos.AccountRepo,
		repos.BudgetRepo,
		repos.RateRepo,
		repos.RecurringRepo,
		cache,
	)

	return &portssvc.ServiceContainer{
		Account:    accountSvc,
		Budget:     budgetSvc,
		Rate:       rateSvc,
		Conversion: conversionSvc,
		Ledger:     ledgerSvc,
		Builder:    builderSvc,
		Recurring:  recurringSvc,
		Sync:       syncSvc,
	}
}
