package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/core/domain"
)

// SumDisplayAmounts returns the sum of the signed display amounts of a
// transaction group.
func SumDisplayAmounts(entries []domain.LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.AmountDisplay)
	}
	return sum
}

// IsBalanced reports whether the group's display amounts sum to zero within
// the balance tolerance.
func IsBalanced(entries []domain.LedgerEntry) bool {
	return SumDisplayAmounts(entries).Abs().LessThanOrEqual(domain.BalanceTolerance)
}

// ConvertedAmount computes amount x rate, the frozen-rate relation every
// entry must satisfy between its display and account (or budget) amounts.
func ConvertedAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// WithinTolerance reports whether got deviates from want by at most the
// balance tolerance.
func WithinTolerance(got, want decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(domain.BalanceTolerance)
}

// AccumulateByAccount sums account-currency amounts per account id.
func AccumulateByAccount(entries []domain.LedgerEntry) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		sums[e.AccountID] = sums[e.AccountID].Add(e.AmountAccount)
	}
	return sums
}
