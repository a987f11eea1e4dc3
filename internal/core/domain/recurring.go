package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceFrequency is the unit of a recurring rule's cadence.
type RecurrenceFrequency string

const (
	Daily   RecurrenceFrequency = "DAILY"
	Weekly  RecurrenceFrequency = "WEEKLY"
	Monthly RecurrenceFrequency = "MONTHLY"
	Yearly  RecurrenceFrequency = "YEARLY"
)

// RecurringLine is one line of a recurring rule's entry template: the
// partial ledger-entry shape minus identity, timestamps and frozen rates.
type RecurringLine struct {
	AccountID     string          `json:"accountID"`
	AmountDisplay decimal.Decimal `json:"amountDisplay"` // signed
	BudgetID      *string         `json:"budgetID,omitempty"`
}

// RecurringRule emits projected ledger-entry groups on a fixed cadence.
// GeneratedUpTo is the checkpoint date through which groups have already
// been emitted; generation resumes strictly after it.
type RecurringRule struct {
	RuleID          string              `json:"ruleID"`
	Description     string              `json:"description"`
	DisplayCurrency string              `json:"displayCurrency"`
	Frequency       RecurrenceFrequency `json:"frequency"`
	Interval        int                 `json:"interval"` // every N frequency units, min 1
	StartDate       time.Time           `json:"startDate"`
	Lines           []RecurringLine     `json:"lines"`
	GeneratedUpTo   time.Time           `json:"generatedUpTo"`
	IsArchived      bool                `json:"isArchived"`
	AuditFields
}

// ValidRecurrenceFrequency reports whether f is a member of the cadence enum.
func ValidRecurrenceFrequency(f RecurrenceFrequency) bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// NextAfter returns the first occurrence strictly after d, or the rule's
// start date if d precedes it. A rule whose frequency is not a known cadence
// (synced from a newer schema version) yields the zero time; callers must
// not generate from it.
func (r RecurringRule) NextAfter(d time.Time) time.Time {
	if !ValidRecurrenceFrequency(r.Frequency) {
		return time.Time{}
	}
	if d.Before(r.StartDate) {
		return r.StartDate
	}
	next := r.StartDate
	for !next.After(d) {
		switch r.Frequency {
		case Daily:
			next = next.AddDate(0, 0, r.Interval)
		case Weekly:
			next = next.AddDate(0, 0, 7*r.Interval)
		case Monthly:
			next = next.AddDate(0, r.Interval, 0)
		case Yearly:
			next = next.AddDate(r.Interval, 0, 0)
		}
	}
	return next
}
