package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource records where an exchange rate came from.
type RateSource string

const (
	RateSourceManual RateSource = "MANUAL"
	RateSourceAPI    RateSource = "API"
)

// FrozenRates is the rate snapshot captured for a ledger entry at creation
// time: display→account always, display→budget when a budget is attributed.
type FrozenRates struct {
	DisplayToAccount decimal.Decimal
	DisplayToBudget  *decimal.Decimal
}

// ExchangeRate stores the directional conversion rate between two currencies
// effective on a specific date. The logical identity is (from, to, date);
// ExchangeRateID exists so the record can be keyed in the document stores.
//
// A rate referenced by a frozen ledger entry is immutable in effect: new
// same-pair rates for later dates never alter past entries, because entries
// copy the rate value at creation time.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"` // must be positive and finite
	DateEffective    time.Time       `json:"dateEffective"`
	Source           RateSource      `json:"source"`
	AuditFields
}
