package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/core/services"
	"github.com/triplebook/triplebook/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:         "Checking",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IncludeInNetWorth, "net worth inclusion defaults to true")
	suite.False(account.IsArchived)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:         "Weird",
		AccountType:  "SOMETHING",
		CurrencyCode: "USD",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_BadCurrency() {
	ctx := context.Background()
	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:         "Checking",
		AccountType:  domain.Asset,
		CurrencyCode: "usd",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PatchesMutableFields() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:         uuid.NewString(),
		Name:              "Checking",
		AccountType:       domain.Asset,
		CurrencyCode:      "USD",
		IncludeInNetWorth: true,
		AuditFields:       domain.AuditFields{CreatedAt: time.Now().UTC().Add(-time.Hour), UpdatedAt: time.Now().UTC().Add(-time.Hour)},
	}
	newName := "Everyday Checking"
	archived := true

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.IsArchived && a.CurrencyCode == "USD"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{
		Name:       &newName,
		IsArchived: &archived,
	})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.True(updated.UpdatedAt.After(updated.CreatedAt))
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChangeSkipsWrite() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Checking",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	sameName := "Checking"

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{Name: &sameName})

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_WithEntriesConflicts() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), Name: "Checking", AccountType: domain.Asset, CurrencyCode: "USD"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockLedgerRepo.On("CountEntriesByAccountID", ctx, existing.AccountID).Return(int64(7), nil).Once()

	err := suite.service.DeleteAccount(ctx, existing.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SystemDefaultRejected() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), Name: "Opening Balances", AccountType: domain.Equity, CurrencyCode: "USD", IsSystemDefault: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()

	err := suite.service.DeleteAccount(ctx, existing.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_CleanAccountDeletes() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), Name: "Unused", AccountType: domain.Asset, CurrencyCode: "USD"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(&existing, nil).Once()
	suite.mockLedgerRepo.On("CountEntriesByAccountID", ctx, existing.AccountID).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, existing.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, existing.AccountID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
