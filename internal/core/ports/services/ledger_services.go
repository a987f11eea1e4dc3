package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/dto"
)

// LedgerReaderSvc defines read operations for transaction groups.
type LedgerReaderSvc interface {
	// GetTransaction retrieves a transaction group's entries in idx order.
	// An absent group yields an empty slice, not an error.
	GetTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// ListTransactions retrieves a paginated list of ledger entries.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// LedgerWriterSvc defines write operations for transaction groups.
type LedgerWriterSvc interface {
	// CreateTransaction validates and atomically persists a transaction group.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)

	// UpdateLedgerEntry patches a single entry and re-validates its group.
	UpdateLedgerEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error)

	// DeleteTransaction removes a whole group atomically; deleting an absent
	// group is a no-op.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// ConfirmTransaction flips a projected group to confirmed.
	ConfirmTransaction(ctx context.Context, transactionID string) error
}

// LedgerCalculatorSvc defines balance and net worth queries.
type LedgerCalculatorSvc interface {
	// CalculateAccountBalance sums account-currency amounts for an account,
	// optionally bounded by an inclusive as-of date.
	CalculateAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// GetAccountBalanceHistory produces the cumulative balance series for the
	// date range, starting from the balance immediately before start.
	GetAccountBalanceHistory(ctx context.Context, accountID string, start, end time.Time) (*dto.BalanceHistoryResponse, error)

	// CalculateNetWorth rolls up all non-archived net-worth accounts into the
	// display currency, signing liabilities negative.
	CalculateNetWorth(ctx context.Context, displayCurrency string, asOf time.Time) (*dto.NetWorthResponse, error)
}

// LedgerSvcFacade combines all ledger engine interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerCalculatorSvc
}
