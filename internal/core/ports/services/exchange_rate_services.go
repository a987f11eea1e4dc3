package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/dto"
)

// ExchangeRateSvcFacade manages the historical rate table.
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate validates and persists a rate for its (from, to,
	// date) identity.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)

	// GetEffectiveRate resolves the rate effective on asOf for the pair,
	// falling back to the inverted reverse-pair rate.
	GetEffectiveRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListRatesByPair retrieves stored rates for a directional pair.
	ListRatesByPair(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error)
}

// ConversionSvcFacade computes converted amounts and freezes rate snapshots.
type ConversionSvcFacade interface {
	// ConvertAmount converts amount between currencies as of a date using
	// arbitrary-precision decimal arithmetic.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error)

	// FreezeRates resolves the display→account and optional display→budget
	// rates as of date. The returned values are copied verbatim into ledger
	// entries and never recomputed.
	FreezeRates(ctx context.Context, displayCode, accountCode string, budgetCode *string, date time.Time) (*domain.FrozenRates, error)
}
