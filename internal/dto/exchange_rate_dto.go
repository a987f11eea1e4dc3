package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// CreateExchangeRateRequest defines the data needed to record a rate.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string            `json:"fromCurrencyCode" binding:"required,len=3"`
	ToCurrencyCode   string            `json:"toCurrencyCode" binding:"required,len=3"`
	Rate             decimal.Decimal   `json:"rate" binding:"required"`
	DateEffective    time.Time         `json:"dateEffective" binding:"required"`
	Source           domain.RateSource `json:"source" binding:"omitempty,oneof=MANUAL API"`
}

// ExchangeRateResponse defines the data returned for an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID   string            `json:"exchangeRateID"`
	FromCurrencyCode string            `json:"fromCurrencyCode"`
	ToCurrencyCode   string            `json:"toCurrencyCode"`
	Rate             decimal.Decimal   `json:"rate"`
	DateEffective    time.Time         `json:"dateEffective"`
	Source           domain.RateSource `json:"source"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ConvertAmountResponse is the result of a conversion query.
type ConvertAmountResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	RateUsed        decimal.Decimal `json:"rateUsed"`
	AsOf            time.Time       `json:"asOf"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   r.ExchangeRateID,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate,
		DateEffective:    r.DateEffective,
		Source:           r.Source,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ToExchangeRateResponses converts a slice of domain rates to DTOs.
func ToExchangeRateResponses(rates []domain.ExchangeRate) []ExchangeRateResponse {
	out := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		out[i] = ToExchangeRateResponse(&rates[i])
	}
	return out
}
