package services

import (
	"context"

	"github.com/triplebook/triplebook/internal/dto"
)

// TransactionBuilderSvcFacade assembles balanced, rate-frozen transaction
// groups from higher-level intents, delegating persistence to the engine.
type TransactionBuilderSvcFacade interface {
	// CreateIncome debits an asset account and credits an income account.
	CreateIncome(ctx context.Context, req dto.IncomeRequest) (*dto.TransactionResponse, error)

	// CreateExpense debits an expense account and credits an asset account.
	CreateExpense(ctx context.Context, req dto.ExpenseRequest) (*dto.TransactionResponse, error)

	// CreateTransfer debits the destination and credits the source account,
	// freezing a rate between the two account currencies when they differ.
	CreateTransfer(ctx context.Context, req dto.TransferRequest) (*dto.TransactionResponse, error)

	// CreateSplit creates an arbitrary multi-split group; the caller-provided
	// lines must already sum to zero in the display currency.
	CreateSplit(ctx context.Context, req dto.SplitRequest) (*dto.TransactionResponse, error)
}
