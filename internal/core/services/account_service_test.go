package services_test

import (
	"context"
	"testing"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	bookID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.bookID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) validAccount() domain.Account {
	return domain.Account{
		AccountCode:    1000,
		AccountName:    "Assets:Bank",
		ToIncrease:     domain.Debit,
		Classification: "Balance sheet",
		AccountType:    "Asset",
	}
}

func (suite *AccountServiceTestSuite) TestRegisterAccount_Success() {
	ctx := context.Background()
	account := suite.validAccount()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.bookID, 1000).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("InsertAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, isNew, err := suite.service.RegisterAccount(ctx, suite.bookID, account)

	suite.Require().NoError(err)
	suite.True(isNew)
	suite.Equal(suite.bookID, created.BookID)
	suite.NotEmpty(created.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRegisterAccount_DuplicateCode() {
	ctx := context.Background()
	account := suite.validAccount()
	existing := suite.validAccount()
	existing.AccountID = uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.bookID, 1000).Return(&existing, nil).Once()

	_, _, err := suite.service.RegisterAccount(ctx, suite.bookID, account)

	suite.Require().Error(err)
	suite.Equal(apperrors.DatabaseQueryError, apperrors.CodeOf(err))
	suite.Contains(err.Error(), "account code already exists")
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "InsertAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestRegisterAccount_LosesInsertRace() {
	ctx := context.Background()
	account := suite.validAccount()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.bookID, 1000).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("InsertAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, _, err := suite.service.RegisterAccount(ctx, suite.bookID, account)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "account code already exists")
}

func (suite *AccountServiceTestSuite) TestRegisterAccount_BadToIncrease() {
	ctx := context.Background()
	account := suite.validAccount()
	account.ToIncrease = "SIDEWAYS"

	_, _, err := suite.service.RegisterAccount(ctx, suite.bookID, account)

	suite.Require().Error(err)
	suite.Equal(apperrors.ValidationError, apperrors.CodeOf(err))
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestRegisterAccount_PathTooDeep() {
	ctx := context.Background()
	account := suite.validAccount()
	account.AccountName = "A:B:C:D"

	_, _, err := suite.service.RegisterAccount(ctx, suite.bookID, account)

	suite.Require().Error(err)
	suite.Equal(apperrors.ValidationError, apperrors.CodeOf(err))
}

func (suite *AccountServiceTestSuite) TestListRegisteredAccounts() {
	ctx := context.Background()
	accounts := []domain.Account{suite.validAccount()}

	suite.mockAccountRepo.On("ListAccountsByBook", ctx, suite.bookID).Return(accounts, nil).Once()

	got, err := suite.service.ListRegisteredAccounts(ctx, suite.bookID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
