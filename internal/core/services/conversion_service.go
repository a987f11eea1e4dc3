package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
)

var decimalOne = decimal.NewFromInt(1)

// conversionService resolves rates for a point in time. It never touches
// rates already frozen into ledger entries.
type conversionService struct {
	BaseService
	rateSvc portssvc.ExchangeRateSvcFacade
}

// NewConversionService creates a new conversion service on top of the rate
// table.
func NewConversionService(rateSvc portssvc.ExchangeRateSvcFacade) portssvc.ConversionSvcFacade {
	return &conversionService{rateSvc: rateSvc}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

func (s *conversionService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	if fromCode == toCode {
		return amount, nil
	}
	rate, err := s.rateSvc.GetEffectiveRate(ctx, fromCode, toCode, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate.Rate), nil
}

// FreezeRates resolves the rate snapshot a new ledger entry copies. Same
// currency pairs freeze at exactly 1; a missing rate surfaces as
// ErrRateNotFound so callers can refuse the entry rather than guess.
func (s *conversionService) FreezeRates(ctx context.Context, displayCode, accountCode string, budgetCode *string, date time.Time) (*domain.FrozenRates, error) {
	toAccount, err := s.resolve(ctx, displayCode, accountCode, date)
	if err != nil {
		return nil, fmt.Errorf("freezing display->account rate: %w", err)
	}

	frozen := &domain.FrozenRates{DisplayToAccount: toAccount}
	if budgetCode != nil {
		toBudget, err := s.resolve(ctx, displayCode, *budgetCode, date)
		if err != nil {
			return nil, fmt.Errorf("freezing display->budget rate: %w", err)
		}
		frozen.DisplayToBudget = &toBudget
	}
	return frozen, nil
}

func (s *conversionService) resolve(ctx context.Context, fromCode, toCode string, date time.Time) (decimal.Decimal, error) {
	if err := ValidateCurrencyCode(fromCode); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := ValidateCurrencyCode(toCode); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if fromCode == toCode {
		return decimalOne, nil
	}
	rate, err := s.rateSvc.GetEffectiveRate(ctx, fromCode, toCode, date)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Rate, nil
}
