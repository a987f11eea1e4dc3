package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the persisted row shape of an exchange rate. A unique
// index over (from_currency_code, to_currency_code, date_effective) enforces
// the composite identity.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	DateEffective    time.Time       `db:"date_effective"`
	Source           string          `db:"source"`
	AuditFields
}
