package models

import "time"

// RecurringRule is the persisted row shape of a recurring rule. The entry
// template lines are stored as a JSON column; the repository marshals them.
type RecurringRule struct {
	RuleID          string    `db:"rule_id"`
	Description     string    `db:"description"`
	DisplayCurrency string    `db:"display_currency"`
	Frequency       string    `db:"frequency"`
	Interval        int       `db:"interval"`
	StartDate       time.Time `db:"start_date"`
	LinesJSON       string    `db:"lines_json"`
	GeneratedUpTo   time.Time `db:"generated_up_to"`
	IsArchived      bool      `db:"is_archived"`
	AuditFields
}
