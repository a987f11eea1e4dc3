package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/core/services"
)

func balancedGroup() ([]domain.LedgerEntry, map[string]domain.Account, map[string]domain.Budget) {
	accA := uuid.NewString()
	accB := uuid.NewString()
	entries := []domain.LedgerEntry{
		{
			EntryID:              uuid.NewString(),
			DisplayCurrency:      "USD",
			AmountDisplay:        decimal.NewFromInt(100),
			AccountID:            accA,
			AmountAccount:        decimal.NewFromInt(100),
			RateDisplayToAccount: decimal.NewFromInt(1),
		},
		{
			EntryID:              uuid.NewString(),
			DisplayCurrency:      "USD",
			AmountDisplay:        decimal.NewFromInt(-100),
			AccountID:            accB,
			AmountAccount:        decimal.NewFromInt(-90),
			RateDisplayToAccount: decimal.NewFromFloat(0.9),
		},
	}
	accounts := map[string]domain.Account{
		accA: {AccountID: accA, CurrencyCode: "USD"},
		accB: {AccountID: accB, CurrencyCode: "EUR"},
	}
	return entries, accounts, map[string]domain.Budget{}
}

func TestValidateTransactionGroup_CleanGroup(t *testing.T) {
	entries, accounts, budgets := balancedGroup()
	assert.Empty(t, services.ValidateTransactionGroup(entries, accounts, budgets))
}

func TestValidateTransactionGroup_Unbalanced(t *testing.T) {
	entries, accounts, budgets := balancedGroup()
	entries[1].AmountDisplay = decimal.NewFromInt(-98)
	entries[1].AmountAccount = decimal.NewFromFloat(-88.2)

	violations := services.ValidateTransactionGroup(entries, accounts, budgets)

	require.Len(t, violations, 1)
	assert.Equal(t, services.ViolationUnbalanced, violations[0].Code)
}

func TestValidateTransactionGroup_ToleranceBoundary(t *testing.T) {
	entries, accounts, budgets := balancedGroup()
	// Exactly at the tolerance is accepted; just past it is not.
	entries[0].AmountDisplay = decimal.NewFromFloat(100.01)
	entries[0].AmountAccount = decimal.NewFromFloat(100.01)
	assert.Empty(t, services.ValidateTransactionGroup(entries, accounts, budgets))

	entries[0].AmountDisplay = decimal.NewFromFloat(100.02)
	entries[0].AmountAccount = decimal.NewFromFloat(100.02)
	violations := services.ValidateTransactionGroup(entries, accounts, budgets)
	require.Len(t, violations, 1)
	assert.Equal(t, services.ViolationUnbalanced, violations[0].Code)
}

func TestValidateTransactionGroup_SingleEntry(t *testing.T) {
	entries, accounts, budgets := balancedGroup()

	violations := services.ValidateTransactionGroup(entries[:1], accounts, budgets)

	require.NotEmpty(t, violations)
	codes := make([]services.ViolationCode, 0, len(violations))
	for _, v := range violations {
		codes = append(codes, v.Code)
	}
	assert.Contains(t, codes, services.ViolationInsufficientEntries)
}

func TestValidateTransactionGroup_MixedDisplayCurrency(t *testing.T) {
	entries, accounts, budgets := balancedGroup()
	entries[1].DisplayCurrency = "EUR"

	violations := services.ValidateTransactionGroup(entries, accounts, budgets)

	require.NotEmpty(t, violations)
	assert.Equal(t, services.ViolationMixedCurrency, violations[0].Code)
}

func TestValidateTransactionGroup_UnknownAccount(t *testing.T) {
	entries, accounts, budgets := balancedGroup()
	delete(accounts, entries[0].AccountID)

	violations := services.ValidateTransactionGroup(entries, accounts, budgets)

	require.Len(t, violations, 1)
	assert.Equal(t, services.ViolationAccountMissing, violations[0].Code)
}

func TestValidateTransactionGroup_AmountRateMismatch(t *testing.T) {
	entries, accounts, budgets := balancedGroup()
	entries[1].AmountAccount = decimal.NewFromInt(-50) // display -100 at rate 0.9 must be -90

	violations := services.ValidateTransactionGroup(entries, accounts, budgets)

	require.Len(t, violations, 1)
	assert.Equal(t, services.ViolationAmountMismatch, violations[0].Code)
}

func TestValidateTransactionGroup_BudgetAmountChecked(t *testing.T) {
	entries, accounts, budgets := balancedGroup()
	budgetID := uuid.NewString()
	budgets[budgetID] = domain.Budget{BudgetID: budgetID, CurrencyCode: "EUR"}
	budgetRate := decimal.NewFromFloat(0.9)
	badAmount := decimal.NewFromInt(10)
	entries[0].BudgetID = &budgetID
	entries[0].RateDisplayToBudget = &budgetRate
	entries[0].AmountBudget = &badAmount // display 100 at rate 0.9 must be 90

	violations := services.ValidateTransactionGroup(entries, accounts, budgets)

	require.Len(t, violations, 1)
	assert.Equal(t, services.ViolationAmountMismatch, violations[0].Code)
}

func TestValidateCurrencyCode(t *testing.T) {
	assert.NoError(t, services.ValidateCurrencyCode("USD"))
	assert.Error(t, services.ValidateCurrencyCode("usd"))
	assert.Error(t, services.ValidateCurrencyCode("US"))
	assert.Error(t, services.ValidateCurrencyCode("DOLLAR"))
	assert.Error(t, services.ValidateCurrencyCode("U5D"))
}

func TestValidateRate(t *testing.T) {
	assert.NoError(t, services.ValidateRate(decimal.NewFromFloat(0.92)))
	assert.Error(t, services.ValidateRate(decimal.Zero))
	assert.Error(t, services.ValidateRate(decimal.NewFromInt(-1)))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, services.ValidateID(uuid.NewString()))
	assert.Error(t, services.ValidateID("not-an-id"))
	assert.Error(t, services.ValidateID(""))
}
