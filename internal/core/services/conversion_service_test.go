package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/core/services"
)

func TestConvertAmount_SameCurrencyShortCircuits(t *testing.T) {
	rateSvc := new(MockRateService)
	svc := services.NewConversionService(rateSvc)

	amount := decimal.NewFromFloat(123.45)
	got, err := svc.ConvertAmount(context.Background(), amount, "USD", "USD", time.Now())

	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
	rateSvc.AssertNotCalled(t, "GetEffectiveRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertAmount_UsesEffectiveRate(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rateSvc := new(MockRateService)
	svc := services.NewConversionService(rateSvc)

	rateSvc.On("GetEffectiveRate", ctx, "USD", "EUR", asOf).
		Return(&domain.ExchangeRate{Rate: decimal.NewFromFloat(0.9)}, nil).Once()

	got, err := svc.ConvertAmount(ctx, decimal.NewFromInt(200), "USD", "EUR", asOf)

	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(180)))
}

func TestFreezeRates_SameCurrencyIsOne(t *testing.T) {
	rateSvc := new(MockRateService)
	svc := services.NewConversionService(rateSvc)

	frozen, err := svc.FreezeRates(context.Background(), "USD", "USD", nil, time.Now())

	require.NoError(t, err)
	assert.True(t, frozen.DisplayToAccount.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, frozen.DisplayToBudget)
}

func TestFreezeRates_ResolvesBothRates(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rateSvc := new(MockRateService)
	svc := services.NewConversionService(rateSvc)

	rateSvc.On("GetEffectiveRate", ctx, "USD", "EUR", asOf).
		Return(&domain.ExchangeRate{Rate: decimal.NewFromFloat(0.9)}, nil).Once()
	rateSvc.On("GetEffectiveRate", ctx, "USD", "GBP", asOf).
		Return(&domain.ExchangeRate{Rate: decimal.NewFromFloat(0.8)}, nil).Once()

	budgetCcy := "GBP"
	frozen, err := svc.FreezeRates(ctx, "USD", "EUR", &budgetCcy, asOf)

	require.NoError(t, err)
	assert.True(t, frozen.DisplayToAccount.Equal(decimal.NewFromFloat(0.9)))
	require.NotNil(t, frozen.DisplayToBudget)
	assert.True(t, frozen.DisplayToBudget.Equal(decimal.NewFromFloat(0.8)))
	rateSvc.AssertExpectations(t)
}

func TestFreezeRates_MissingRateSurfaces(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rateSvc := new(MockRateService)
	svc := services.NewConversionService(rateSvc)

	rateSvc.On("GetEffectiveRate", ctx, "USD", "JPY", asOf).
		Return(nil, apperrors.ErrRateNotFound).Once()

	_, err := svc.FreezeRates(ctx, "USD", "JPY", nil, asOf)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
}

func TestFreezeRates_BadCurrencyCode(t *testing.T) {
	rateSvc := new(MockRateService)
	svc := services.NewConversionService(rateSvc)

	_, err := svc.FreezeRates(context.Background(), "usd", "EUR", nil, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
