package mapping

import (
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		Period:       string(d.Period),
		TargetAmount: d.TargetAmount,
		IsArchived:   d.IsArchived,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		Period:       domain.BudgetPeriod(m.Period),
		TargetAmount: m.TargetAmount,
		IsArchived:   m.IsArchived,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
