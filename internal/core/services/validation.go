package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/utils/accounting"
)

// ViolationCode identifies one class of invariant violation.
type ViolationCode string

const (
	ViolationUnbalanced          ViolationCode = "UNBALANCED"
	ViolationInsufficientEntries ViolationCode = "INSUFFICIENT_ENTRIES"
	ViolationAccountMissing      ViolationCode = "ACCOUNT_MISSING"
	ViolationBudgetMissing       ViolationCode = "BUDGET_MISSING"
	ViolationAmountMismatch      ViolationCode = "AMOUNT_MISMATCH"
	ViolationMixedCurrency       ViolationCode = "MIXED_CURRENCY"
)

// Violation describes one failed invariant on a transaction group. Callers
// receive the full list; the engine surfaces the first as a typed error.
type Violation struct {
	Code    ViolationCode
	Message string
}

// ValidateTransactionGroup checks the zero-sum invariant, minimum entry
// count, single display currency, referential integrity, and the frozen-rate
// amount relations. accounts and budgets are the currently stored records
// for the referenced ids.
func ValidateTransactionGroup(entries []domain.LedgerEntry, accounts map[string]domain.Account, budgets map[string]domain.Budget) []Violation {
	var violations []Violation

	if len(entries) < 2 {
		violations = append(violations, Violation{
			Code:    ViolationInsufficientEntries,
			Message: fmt.Sprintf("transaction group has %d entries, need at least 2", len(entries)),
		})
	}

	if len(entries) > 0 {
		ccy := entries[0].DisplayCurrency
		for _, e := range entries[1:] {
			if e.DisplayCurrency != ccy {
				violations = append(violations, Violation{
					Code:    ViolationMixedCurrency,
					Message: fmt.Sprintf("entry %s uses display currency %s, group uses %s", e.EntryID, e.DisplayCurrency, ccy),
				})
				break
			}
		}
	}

	if sum := accounting.SumDisplayAmounts(entries); sum.Abs().GreaterThan(domain.BalanceTolerance) {
		violations = append(violations, Violation{
			Code:    ViolationUnbalanced,
			Message: fmt.Sprintf("display amounts sum to %s, want 0 within %s", sum.String(), domain.BalanceTolerance.String()),
		})
	}

	for _, e := range entries {
		if _, ok := accounts[e.AccountID]; !ok {
			violations = append(violations, Violation{
				Code:    ViolationAccountMissing,
				Message: fmt.Sprintf("entry %s references unknown account %s", e.EntryID, e.AccountID),
			})
		}
		if e.BudgetID != nil {
			if _, ok := budgets[*e.BudgetID]; !ok {
				violations = append(violations, Violation{
					Code:    ViolationBudgetMissing,
					Message: fmt.Sprintf("entry %s references unknown budget %s", e.EntryID, *e.BudgetID),
				})
			}
		}

		want := accounting.ConvertedAmount(e.AmountDisplay, e.RateDisplayToAccount)
		if !accounting.WithinTolerance(e.AmountAccount, want) {
			violations = append(violations, Violation{
				Code:    ViolationAmountMismatch,
				Message: fmt.Sprintf("entry %s account amount %s does not match display %s x rate %s", e.EntryID, e.AmountAccount.String(), e.AmountDisplay.String(), e.RateDisplayToAccount.String()),
			})
		}
		if e.AmountBudget != nil && e.RateDisplayToBudget != nil {
			want := accounting.ConvertedAmount(e.AmountDisplay, *e.RateDisplayToBudget)
			if !accounting.WithinTolerance(*e.AmountBudget, want) {
				violations = append(violations, Violation{
					Code:    ViolationAmountMismatch,
					Message: fmt.Sprintf("entry %s budget amount %s does not match display %s x rate %s", e.EntryID, e.AmountBudget.String(), e.AmountDisplay.String(), e.RateDisplayToBudget.String()),
				})
			}
		}
	}

	return violations
}

// violationError maps the first violation of a group to its typed sentinel
// so callers can branch on kind.
func violationError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	v := violations[0]
	var base error
	switch v.Code {
	case ViolationUnbalanced:
		base = apperrors.ErrUnbalancedTransaction
	case ViolationInsufficientEntries:
		base = apperrors.ErrInsufficientEntries
	case ViolationAccountMissing:
		base = apperrors.ErrAccountNotFound
	case ViolationBudgetMissing:
		base = apperrors.ErrBudgetNotFound
	default:
		base = apperrors.ErrValidation
	}
	return fmt.Errorf("%w: %s", base, v.Message)
}

// ValidateAccountFields checks type enum membership, currency code shape and
// a non-empty name.
func ValidateAccountFields(account domain.Account) error {
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("%w: account name must not be empty", apperrors.ErrInvalidAccount)
	}
	if !domain.ValidAccountType(account.AccountType) {
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrInvalidAccount, account.AccountType)
	}
	if err := ValidateCurrencyCode(account.CurrencyCode); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidAccount, err.Error())
	}
	return nil
}

// ValidateCurrencyCode checks the 3-letter uppercase currency code shape.
func ValidateCurrencyCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("currency code %q must be 3 letters", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("currency code %q must be uppercase letters", code)
		}
	}
	return nil
}

// ValidateRate checks that an exchange rate value is positive and finite.
// decimal.Decimal cannot represent NaN or infinity, so positivity is the
// whole check once the value parsed.
func ValidateRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: rate must be positive, got %s", apperrors.ErrInvalidRate, rate.String())
	}
	return nil
}

// ValidateID ensures an externally supplied identifier conforms to the
// expected unique-id shape before it is trusted as a foreign key.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed identifier %q", apperrors.ErrValidation, id)
	}
	return nil
}
