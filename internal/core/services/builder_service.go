package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/apperrors"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
	"github.com/triplebook/triplebook/internal/utils/accounting"
)

// builderService translates high-level money movements into balanced
// transaction groups and hands them to the ledger engine, which freezes the
// rates and validates the group.
type builderService struct {
	BaseService
	ledgerSvc portssvc.LedgerSvcFacade
}

// NewBuilderService creates a new transaction builder on top of the ledger
// engine.
func NewBuilderService(ledgerSvc portssvc.LedgerSvcFacade) portssvc.TransactionBuilderSvcFacade {
	return &builderService{ledgerSvc: ledgerSvc}
}

var _ portssvc.TransactionBuilderSvcFacade = (*builderService)(nil)

func (s *builderService) CreateIncome(ctx context.Context, req dto.IncomeRequest) (*dto.TransactionResponse, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return s.ledgerSvc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Date:            req.Date,
		Description:     req.Description,
		DisplayCurrency: req.DisplayCurrency,
		Entries: []dto.CreateEntryRequest{
			{AccountID: req.AssetAccountID, AmountDisplay: req.Amount, BudgetID: req.BudgetID},
			{AccountID: req.IncomeAccountID, AmountDisplay: req.Amount.Neg()},
		},
	})
}

func (s *builderService) CreateExpense(ctx context.Context, req dto.ExpenseRequest) (*dto.TransactionResponse, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return s.ledgerSvc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Date:            req.Date,
		Description:     req.Description,
		DisplayCurrency: req.DisplayCurrency,
		Entries: []dto.CreateEntryRequest{
			{AccountID: req.ExpenseAccountID, AmountDisplay: req.Amount, BudgetID: req.BudgetID},
			{AccountID: req.AssetAccountID, AmountDisplay: req.Amount.Neg()},
		},
	})
}

func (s *builderService) CreateTransfer(ctx context.Context, req dto.TransferRequest) (*dto.TransactionResponse, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: source and destination account are identical", apperrors.ErrValidation)
	}
	return s.ledgerSvc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Date:            req.Date,
		Description:     req.Description,
		DisplayCurrency: req.DisplayCurrency,
		Entries: []dto.CreateEntryRequest{
			{AccountID: req.ToAccountID, AmountDisplay: req.Amount},
			{AccountID: req.FromAccountID, AmountDisplay: req.Amount.Neg()},
		},
	})
}

// CreateSplit rejects an unbalanced line set before touching the engine so
// the caller gets the builder's error rather than a group validation error.
func (s *builderService) CreateSplit(ctx context.Context, req dto.SplitRequest) (*dto.TransactionResponse, error) {
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: got %d lines", apperrors.ErrInsufficientEntries, len(req.Lines))
	}

	entries := make([]dto.CreateEntryRequest, len(req.Lines))
	for i, line := range req.Lines {
		entries[i] = dto.CreateEntryRequest{
			AccountID:     line.AccountID,
			AmountDisplay: line.Amount,
			BudgetID:      line.BudgetID,
		}
	}

	sum := decimal.Zero
	for _, line := range req.Lines {
		sum = sum.Add(line.Amount)
	}
	if !accounting.WithinTolerance(sum, decimal.Zero) {
		return nil, fmt.Errorf("%w: lines sum to %s", apperrors.ErrUnbalancedTransaction, sum.String())
	}

	return s.ledgerSvc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Date:            req.Date,
		Description:     req.Description,
		DisplayCurrency: req.DisplayCurrency,
		Entries:         entries,
	})
}
