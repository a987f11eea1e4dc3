package mapping

import (
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:         d.AccountID,
		Name:              d.Name,
		AccountType:       string(d.AccountType),
		CurrencyCode:      d.CurrencyCode,
		IncludeInNetWorth: d.IncludeInNetWorth,
		IsSystemDefault:   d.IsSystemDefault,
		IsArchived:        d.IsArchived,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:         m.AccountID,
		Name:              m.Name,
		AccountType:       domain.AccountType(m.AccountType),
		CurrencyCode:      m.CurrencyCode,
		IncludeInNetWorth: m.IncludeInNetWorth,
		IsSystemDefault:   m.IsSystemDefault,
		IsArchived:        m.IsArchived,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
