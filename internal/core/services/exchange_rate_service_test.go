package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/core/services"
	"github.com/triplebook/triplebook/internal/dto"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockRateRepository
	service      portssvc.ExchangeRateSvcFacade
	asOf         time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo)
	suite.asOf = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.NewFromFloat(0.92),
		DateEffective:    time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC),
	}

	suite.mockRateRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal(domain.RateSourceManual, rate.Source)
	// The effective date is stored at day precision.
	suite.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), rate.DateEffective)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCurrencyRejected() {
	ctx := context.Background()
	_, err := suite.service.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(1),
		DateEffective:    suite.asOf,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRate)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRateRejected() {
	ctx := context.Background()
	for _, rate := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-2)} {
		_, err := suite.service.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{
			FromCurrencyCode: "USD",
			ToCurrencyCode:   "EUR",
			Rate:             rate,
			DateEffective:    suite.asOf,
		})
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrInvalidRate)
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_DuplicateIdentity() {
	ctx := context.Background()
	suite.mockRateRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.NewFromFloat(0.92),
		DateEffective:    suite.asOf,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ExchangeRateServiceTestSuite) TestGetEffectiveRate_ExactPair() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.NewFromFloat(0.92),
		DateEffective:    suite.asOf,
	}
	suite.mockRateRepo.On("FindEffectiveRate", ctx, "USD", "EUR", suite.asOf).Return(stored, nil).Once()

	rate, err := suite.service.GetEffectiveRate(ctx, "USD", "EUR", suite.asOf)

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.NewFromFloat(0.92)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetEffectiveRate_InverseFallback() {
	ctx := context.Background()
	reverse := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.NewFromFloat(0.8),
		DateEffective:    suite.asOf,
	}
	suite.mockRateRepo.On("FindEffectiveRate", ctx, "EUR", "USD", suite.asOf).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindEffectiveRate", ctx, "USD", "EUR", suite.asOf).
		Return(reverse, nil).Once()

	rate, err := suite.service.GetEffectiveRate(ctx, "EUR", "USD", suite.asOf)

	suite.Require().NoError(err)
	suite.Equal("EUR", rate.FromCurrencyCode)
	suite.Equal("USD", rate.ToCurrencyCode)
	suite.True(rate.Rate.Equal(decimal.NewFromInt(1).Div(decimal.NewFromFloat(0.8))))
}

func (suite *ExchangeRateServiceTestSuite) TestGetEffectiveRate_BothMissing() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindEffectiveRate", ctx, "EUR", "JPY", suite.asOf).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindEffectiveRate", ctx, "JPY", "EUR", suite.asOf).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEffectiveRate(ctx, "EUR", "JPY", suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
