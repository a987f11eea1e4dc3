package models

// Account is the persisted row shape of an account.
type Account struct {
	AccountID         string `db:"account_id"`
	Name              string `db:"name"`
	AccountType       string `db:"account_type"`
	CurrencyCode      string `db:"currency_code"`
	IncludeInNetWorth bool   `db:"include_in_net_worth"`
	IsSystemDefault   bool   `db:"is_system_default"`
	IsArchived        bool   `db:"is_archived"`
	AuditFields
}
