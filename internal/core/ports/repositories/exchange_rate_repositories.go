package repositories

import (
	"context"
	"time"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindRateByID retrieves a rate by its identifier.
	FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// FindEffectiveRate retrieves the stored rate for the exact directional
	// pair with the latest date_effective on or before asOf. It does not
	// consult the inverse pair; that fallback is the conversion service's.
	FindEffectiveRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListRatesByPair retrieves all stored rates for a directional pair,
	// ascending by date_effective.
	ListRatesByPair(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error)

	// FindRatesUpdatedSince retrieves rates with updated_at strictly greater
	// than the given checkpoint, ascending by updated_at.
	FindRatesUpdatedSince(ctx context.Context, since time.Time) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveRate persists a rate; saving a second rate for the same
	// (from, to, date) identity fails with a duplicate error.
	SaveRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpsertRate inserts or replaces a rate preserving its timestamps.
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
