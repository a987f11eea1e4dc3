package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/core/services"
	"github.com/triplebook/triplebook/internal/dto"
)

type RecurringServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockRecurringRepository
	mockLedgerSvc *MockLedgerService
	service       portssvc.RecurringSvcFacade
	startDate     time.Time
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRecurringRepository)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.service = services.NewRecurringService(suite.mockRepo, suite.mockLedgerSvc)
	suite.startDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *RecurringServiceTestSuite) templateLines() []dto.RecurringLineRequest {
	return []dto.RecurringLineRequest{
		{AccountID: uuid.NewString(), AmountDisplay: decimal.NewFromInt(1200)},
		{AccountID: uuid.NewString(), AmountDisplay: decimal.NewFromInt(-1200)},
	}
}

func (suite *RecurringServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	suite.mockRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.RecurringRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, dto.CreateRecurringRuleRequest{
		Description:     "Rent",
		DisplayCurrency: "USD",
		Frequency:       domain.Monthly,
		StartDate:       suite.startDate,
		Lines:           suite.templateLines(),
	})

	suite.Require().NoError(err)
	suite.Equal(1, rule.Interval)
	// The checkpoint sits just before the start date so the first due
	// occurrence is the start date itself.
	suite.Equal(suite.startDate.AddDate(0, 0, -1), rule.GeneratedUpTo)
}

func (suite *RecurringServiceTestSuite) TestCreateRule_UnbalancedTemplateRejected() {
	ctx := context.Background()
	lines := suite.templateLines()
	lines[1].AmountDisplay = decimal.NewFromInt(-1100)

	_, err := suite.service.CreateRule(ctx, dto.CreateRecurringRuleRequest{
		Description:     "Rent",
		DisplayCurrency: "USD",
		Frequency:       domain.Monthly,
		StartDate:       suite.startDate,
		Lines:           lines,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedTransaction)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateRule_SingleLineRejected() {
	ctx := context.Background()
	_, err := suite.service.CreateRule(ctx, dto.CreateRecurringRuleRequest{
		Description:     "Rent",
		DisplayCurrency: "USD",
		Frequency:       domain.Monthly,
		StartDate:       suite.startDate,
		Lines:           suite.templateLines()[:1],
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientEntries)
}

func (suite *RecurringServiceTestSuite) storedRule() domain.RecurringRule {
	return domain.RecurringRule{
		RuleID:          uuid.NewString(),
		Description:     "Rent",
		DisplayCurrency: "USD",
		Frequency:       domain.Monthly,
		Interval:        1,
		StartDate:       suite.startDate,
		Lines: []domain.RecurringLine{
			{AccountID: uuid.NewString(), AmountDisplay: decimal.NewFromInt(1200)},
			{AccountID: uuid.NewString(), AmountDisplay: decimal.NewFromInt(-1200)},
		},
		GeneratedUpTo: suite.startDate.AddDate(0, 0, -1),
	}
}

func (suite *RecurringServiceTestSuite) TestGenerateDue_EmitsEveryDueOccurrence() {
	ctx := context.Background()
	rule := suite.storedRule()
	asOf := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ListRules", ctx, false).Return([]domain.RecurringRule{rule}, nil).Once()

	var dates []time.Time
	suite.mockLedgerSvc.On("CreateTransaction", ctx, mock.AnythingOfType("dto.CreateTransactionRequest")).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(dto.CreateTransactionRequest)
			dates = append(dates, req.Date)
			suite.Equal(domain.Projected, req.Status)
			suite.Require().NotNil(req.RecurringRuleID)
			suite.Equal(rule.RuleID, *req.RecurringRuleID)
		}).
		Return(&dto.TransactionResponse{TransactionID: uuid.NewString()}, nil).Times(3)
	suite.mockRepo.On("UpdateRule", ctx, mock.AnythingOfType("domain.RecurringRule")).Return(nil).Times(3)

	resp, err := suite.service.GenerateDue(ctx, asOf)

	suite.Require().NoError(err)
	suite.Len(resp.GeneratedTransactionIDs, 3)
	suite.Equal([]time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}, dates)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestGenerateDue_NothingDueIsNoOp() {
	ctx := context.Background()
	rule := suite.storedRule()
	rule.GeneratedUpTo = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ListRules", ctx, false).Return([]domain.RecurringRule{rule}, nil).Once()

	resp, err := suite.service.GenerateDue(ctx, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Empty(resp.GeneratedTransactionIDs)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateDue_UnknownFrequencySkipsRule() {
	ctx := context.Background()
	// A rule synced from a newer schema version may carry a cadence this
	// build does not know. It must be left alone, not walked monthly.
	odd := suite.storedRule()
	odd.Frequency = "BIWEEKLY"
	known := suite.storedRule()

	suite.mockRepo.On("ListRules", ctx, false).
		Return([]domain.RecurringRule{odd, known}, nil).Once()
	suite.mockLedgerSvc.On("CreateTransaction", ctx, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.RecurringRuleID != nil && *req.RecurringRuleID == known.RuleID
	})).Return(&dto.TransactionResponse{TransactionID: uuid.NewString()}, nil).Once()
	suite.mockRepo.On("UpdateRule", ctx, mock.MatchedBy(func(r domain.RecurringRule) bool {
		return r.RuleID == known.RuleID
	})).Return(nil).Once()

	resp, err := suite.service.GenerateDue(ctx, suite.startDate)

	suite.Require().NoError(err)
	suite.Len(resp.GeneratedTransactionIDs, 1)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestGenerateDue_CheckpointAdvancesPerOccurrence() {
	ctx := context.Background()
	rule := suite.storedRule()
	asOf := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ListRules", ctx, false).Return([]domain.RecurringRule{rule}, nil).Once()
	suite.mockLedgerSvc.On("CreateTransaction", ctx, mock.AnythingOfType("dto.CreateTransactionRequest")).
		Return(&dto.TransactionResponse{TransactionID: uuid.NewString()}, nil).Times(2)

	var checkpoints []time.Time
	suite.mockRepo.On("UpdateRule", ctx, mock.AnythingOfType("domain.RecurringRule")).
		Run(func(args mock.Arguments) {
			checkpoints = append(checkpoints, args.Get(1).(domain.RecurringRule).GeneratedUpTo)
		}).
		Return(nil).Times(2)

	_, err := suite.service.GenerateDue(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal([]time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}, checkpoints, "checkpoint advances after each persisted occurrence")
}

func (suite *RecurringServiceTestSuite) TestUpdateRule_PatchesFields() {
	ctx := context.Background()
	rule := suite.storedRule()
	archived := true

	suite.mockRepo.On("FindRuleByID", ctx, rule.RuleID).Return(&rule, nil).Once()
	suite.mockRepo.On("UpdateRule", ctx, mock.AnythingOfType("domain.RecurringRule")).Return(nil).Once()

	updated, err := suite.service.UpdateRule(ctx, rule.RuleID, dto.UpdateRecurringRuleRequest{IsArchived: &archived})

	suite.Require().NoError(err)
	suite.True(updated.IsArchived)
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
