package mapping

import (
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:              d.EntryID,
		TransactionID:        d.TransactionID,
		Idx:                  d.Idx,
		Date:                 d.Date,
		Description:          d.Description,
		Status:               string(d.Status),
		RecurringRuleID:      d.RecurringRuleID,
		DisplayCurrency:      d.DisplayCurrency,
		AmountDisplay:        d.AmountDisplay,
		AccountID:            d.AccountID,
		AmountAccount:        d.AmountAccount,
		RateDisplayToAccount: d.RateDisplayToAccount,
		BudgetID:             d.BudgetID,
		AmountBudget:         d.AmountBudget,
		RateDisplayToBudget:  d.RateDisplayToBudget,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:              m.EntryID,
		TransactionID:        m.TransactionID,
		Idx:                  m.Idx,
		Date:                 m.Date,
		Description:          m.Description,
		Status:               domain.EntryStatus(m.Status),
		RecurringRuleID:      m.RecurringRuleID,
		DisplayCurrency:      m.DisplayCurrency,
		AmountDisplay:        m.AmountDisplay,
		AccountID:            m.AccountID,
		AmountAccount:        m.AmountAccount,
		RateDisplayToAccount: m.RateDisplayToAccount,
		BudgetID:             m.BudgetID,
		AmountBudget:         m.AmountBudget,
		RateDisplayToBudget:  m.RateDisplayToBudget,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntries converts a slice of model entries to domain entries.
func ToDomainLedgerEntries(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}
