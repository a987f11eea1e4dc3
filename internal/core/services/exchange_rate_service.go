package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
)

type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	if err := ValidateCurrencyCode(req.FromCurrencyCode); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := ValidateCurrencyCode(req.ToCurrencyCode); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency are identical", apperrors.ErrInvalidRate)
	}
	if err := ValidateRate(req.Rate); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = domain.RateSourceManual
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective.UTC().Truncate(24 * time.Hour),
		Source:           source,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: rate %s->%s on %s already recorded",
				apperrors.ErrDuplicate, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.DateEffective.Format("2006-01-02"))
		}
		s.LogError(ctx, err, "Failed to save exchange rate")
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate recorded",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// GetEffectiveRate resolves the rate effective on asOf. When the exact pair
// has no stored rate, the reverse pair's rate is inverted instead; an entry
// frozen from an inverted rate stores the inverted value.
func (s *exchangeRateService) GetEffectiveRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindEffectiveRate(ctx, fromCode, toCode, asOf)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up rate %s->%s: %w", fromCode, toCode, err)
	}

	inverse, invErr := s.rateRepo.FindEffectiveRate(ctx, toCode, fromCode, asOf)
	if invErr != nil {
		if errors.Is(invErr, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rate for %s->%s on or before %s",
				apperrors.ErrRateNotFound, fromCode, toCode, asOf.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to look up rate %s->%s: %w", toCode, fromCode, invErr)
	}

	inverted := *inverse
	inverted.FromCurrencyCode = fromCode
	inverted.ToCurrencyCode = toCode
	inverted.Rate = decimalOne.Div(inverse.Rate)
	return &inverted, nil
}

func (s *exchangeRateService) ListRatesByPair(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	if err := ValidateCurrencyCode(fromCode); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := ValidateCurrencyCode(toCode); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	rates, err := s.rateRepo.ListRatesByPair(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates %s->%s: %w", fromCode, toCode, err)
	}
	return rates, nil
}
