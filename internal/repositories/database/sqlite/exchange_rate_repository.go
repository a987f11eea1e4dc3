package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	"github.com/triplebook/triplebook/internal/models"
	"github.com/triplebook/triplebook/internal/utils/mapping"
)

type SQLiteExchangeRateRepository struct {
	BaseRepository
}

// newSQLiteExchangeRateRepository creates a new repository for rate data.
func newSQLiteExchangeRateRepository(db *sql.DB) portsrepo.ExchangeRateRepositoryFacade {
	return &SQLiteExchangeRateRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*SQLiteExchangeRateRepository)(nil)

const rateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, source, created_at, updated_at`

func scanRate(row interface{ Scan(...any) error }) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.DateEffective,
		&m.Source,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *SQLiteExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + rateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ExchangeRateID, m.FromCurrencyCode, m.ToCurrencyCode,
		m.Rate, m.DateEffective, m.Source, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: rate for %s->%s on %s",
				apperrors.ErrDuplicate, m.FromCurrencyCode, m.ToCurrencyCode, m.DateEffective.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return nil
}

func (r *SQLiteExchangeRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE exchange_rate_id = ?;`
	m, err := scanRate(r.DB.QueryRowContext(ctx, query, rateID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindEffectiveRate returns the exact-pair rate with the latest effective
// date on or before asOf. The inverse-pair fallback lives in the service.
func (r *SQLiteExchangeRateRepository) FindEffectiveRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = ? AND to_currency_code = ? AND date_effective <= ?
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	m, err := scanRate(r.DB.QueryRowContext(ctx, query, fromCode, toCode, asOf))
	if err != nil {
		return nil, mapNotFound(err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *SQLiteExchangeRateRepository) ListRatesByPair(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = ? AND to_currency_code = ?
		ORDER BY date_effective;
	`
	rows, err := r.DB.QueryContext(ctx, query, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates %s->%s: %w", fromCode, toCode, err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0)
	for rows.Next() {
		m, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}
	return rates, rows.Err()
}

func (r *SQLiteExchangeRateRepository) FindRatesUpdatedSince(ctx context.Context, since time.Time) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE updated_at > ? ORDER BY updated_at;`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0)
	for rows.Next() {
		m, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}
	return rates, rows.Err()
}

func (r *SQLiteExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + rateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (exchange_rate_id) DO UPDATE SET
			from_currency_code = excluded.from_currency_code,
			to_currency_code = excluded.to_currency_code,
			rate = excluded.rate,
			date_effective = excluded.date_effective,
			source = excluded.source,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at;
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ExchangeRateID, m.FromCurrencyCode, m.ToCurrencyCode,
		m.Rate, m.DateEffective, m.Source, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s: %w", m.ExchangeRateID, err)
	}
	return nil
}
