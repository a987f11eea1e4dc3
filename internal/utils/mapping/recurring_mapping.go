package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/models"
)

// ToModelRecurringRule converts a domain RecurringRule to a model row,
// marshaling the template lines to JSON.
func ToModelRecurringRule(d domain.RecurringRule) (models.RecurringRule, error) {
	lines, err := json.Marshal(d.Lines)
	if err != nil {
		return models.RecurringRule{}, fmt.Errorf("failed to marshal recurring rule lines: %w", err)
	}
	return models.RecurringRule{
		RuleID:          d.RuleID,
		Description:     d.Description,
		DisplayCurrency: d.DisplayCurrency,
		Frequency:       string(d.Frequency),
		Interval:        d.Interval,
		StartDate:       d.StartDate,
		LinesJSON:       string(lines),
		GeneratedUpTo:   d.GeneratedUpTo,
		IsArchived:      d.IsArchived,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainRecurringRule converts a model row to a domain RecurringRule.
func ToDomainRecurringRule(m models.RecurringRule) (domain.RecurringRule, error) {
	var lines []domain.RecurringLine
	if m.LinesJSON != "" {
		if err := json.Unmarshal([]byte(m.LinesJSON), &lines); err != nil {
			return domain.RecurringRule{}, fmt.Errorf("failed to unmarshal recurring rule lines: %w", err)
		}
	}
	return domain.RecurringRule{
		RuleID:          m.RuleID,
		Description:     m.Description,
		DisplayCurrency: m.DisplayCurrency,
		Frequency:       domain.RecurrenceFrequency(m.Frequency),
		Interval:        m.Interval,
		StartDate:       m.StartDate,
		Lines:           lines,
		GeneratedUpTo:   m.GeneratedUpTo,
		IsArchived:      m.IsArchived,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}, nil
}
