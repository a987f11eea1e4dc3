package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portsrepo "github.com/triplebook/triplebook/internal/core/ports/repositories"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
	"github.com/triplebook/triplebook/internal/utils/accounting"
)

type recurringService struct {
	BaseService
	recurringRepo portsrepo.RecurringRepositoryFacade
	ledgerSvc     portssvc.LedgerSvcFacade
}

// NewRecurringService creates a new recurring rule service. Generated groups
// flow through the ledger engine so rates freeze at each occurrence date.
func NewRecurringService(recurringRepo portsrepo.RecurringRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade) portssvc.RecurringSvcFacade {
	return &recurringService{recurringRepo: recurringRepo, ledgerSvc: ledgerSvc}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

func (s *recurringService) CreateRule(ctx context.Context, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error) {
	if err := ValidateCurrencyCode(req.DisplayCurrency); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: got %d template lines", apperrors.ErrInsufficientEntries, len(req.Lines))
	}

	lines := make([]domain.RecurringLine, len(req.Lines))
	sum := decimal.Zero
	for i, l := range req.Lines {
		lines[i] = domain.RecurringLine{
			AccountID:     l.AccountID,
			AmountDisplay: l.AmountDisplay,
			BudgetID:      l.BudgetID,
		}
		sum = sum.Add(l.AmountDisplay)
	}
	if !accounting.WithinTolerance(sum, decimal.Zero) {
		return nil, fmt.Errorf("%w: template lines sum to %s", apperrors.ErrUnbalancedTransaction, sum.String())
	}

	interval := req.Interval
	if interval < 1 {
		interval = 1
	}

	now := time.Now().UTC()
	rule := domain.RecurringRule{
		RuleID:          uuid.NewString(),
		Description:     req.Description,
		DisplayCurrency: req.DisplayCurrency,
		Frequency:       req.Frequency,
		Interval:        interval,
		StartDate:       req.StartDate.UTC().Truncate(24 * time.Hour),
		Lines:           lines,
		// Generation starts at the rule's first occurrence.
		GeneratedUpTo: req.StartDate.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1),
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.recurringRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save recurring rule")
		return nil, fmt.Errorf("failed to save recurring rule: %w", err)
	}

	s.LogInfo(ctx, "Recurring rule created", slog.String("rule_id", rule.RuleID))
	return &rule, nil
}

func (s *recurringService) GetRuleByID(ctx context.Context, ruleID string) (*domain.RecurringRule, error) {
	rule, err := s.recurringRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring rule %s: %w", ruleID, err)
	}
	return rule, nil
}

func (s *recurringService) ListRules(ctx context.Context, includeArchived bool) ([]domain.RecurringRule, error) {
	rules, err := s.recurringRepo.ListRules(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	return rules, nil
}

func (s *recurringService) UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRecurringRuleRequest) (*domain.RecurringRule, error) {
	rule, err := s.recurringRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring rule %s: %w", ruleID, err)
	}

	updated := false
	if req.Description != nil && *req.Description != rule.Description {
		rule.Description = *req.Description
		updated = true
	}
	if req.Frequency != nil && *req.Frequency != rule.Frequency {
		rule.Frequency = *req.Frequency
		updated = true
	}
	if req.Interval != nil && *req.Interval != rule.Interval {
		if *req.Interval < 1 {
			return nil, fmt.Errorf("%w: interval must be at least 1", apperrors.ErrValidation)
		}
		rule.Interval = *req.Interval
		updated = true
	}
	if req.IsArchived != nil && *req.IsArchived != rule.IsArchived {
		rule.IsArchived = *req.IsArchived
		updated = true
	}

	if !updated {
		return rule, nil
	}

	rule.Touch(time.Now().UTC())
	if err := s.recurringRepo.UpdateRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update recurring rule", slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to update recurring rule: %w", err)
	}

	s.LogInfo(ctx, "Recurring rule updated", slog.String("rule_id", ruleID))
	return rule, nil
}

// GenerateDue walks every active rule forward from its checkpoint, emitting
// one projected transaction group per due occurrence. Each rule's checkpoint
// advances as its groups persist, so a failure partway never double-emits on
// retry.
func (s *recurringService) GenerateDue(ctx context.Context, asOf time.Time) (*dto.GenerateDueResponse, error) {
	rules, err := s.recurringRepo.ListRules(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}

	generated := make([]string, 0)
	for i := range rules {
		rule := rules[i]
		if !domain.ValidRecurrenceFrequency(rule.Frequency) {
			// A rule synced from a newer schema version carries a cadence
			// this build cannot walk; skip it rather than guess.
			s.LogWarn(ctx, "Skipping rule with unknown frequency",
				slog.String("rule_id", rule.RuleID),
				slog.String("frequency", string(rule.Frequency)))
			continue
		}
		for occ := rule.NextAfter(rule.GeneratedUpTo); !occ.After(asOf); occ = rule.NextAfter(occ) {
			entries := make([]dto.CreateEntryRequest, len(rule.Lines))
			for j, l := range rule.Lines {
				entries[j] = dto.CreateEntryRequest{
					AccountID:     l.AccountID,
					AmountDisplay: l.AmountDisplay,
					BudgetID:      l.BudgetID,
				}
			}
			resp, err := s.ledgerSvc.CreateTransaction(ctx, dto.CreateTransactionRequest{
				Date:            occ,
				Description:     rule.Description,
				DisplayCurrency: rule.DisplayCurrency,
				Status:          domain.Projected,
				RecurringRuleID: &rule.RuleID,
				Entries:         entries,
			})
			if err != nil {
				s.LogError(ctx, err, "Failed to generate projected group",
					slog.String("rule_id", rule.RuleID),
					slog.String("occurrence", occ.Format("2006-01-02")))
				return nil, fmt.Errorf("generating occurrence %s of rule %s: %w",
					occ.Format("2006-01-02"), rule.RuleID, err)
			}
			generated = append(generated, resp.TransactionID)

			rule.GeneratedUpTo = occ
			rule.Touch(time.Now().UTC())
			if err := s.recurringRepo.UpdateRule(ctx, rule); err != nil {
				return nil, fmt.Errorf("advancing checkpoint of rule %s: %w", rule.RuleID, err)
			}
		}
	}

	if len(generated) > 0 {
		s.LogInfo(ctx, "Projected groups generated", slog.Int("count", len(generated)))
	}
	return &dto.GenerateDueResponse{GeneratedTransactionIDs: generated}, nil
}
