package services_test

import (
	"context"
	"testing"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BookServiceTestSuite struct {
	suite.Suite
	mockBookRepo    *MockBookRepository
	mockEntryRepo   *MockEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.BookSvcFacade
	book            domain.Book
}

func (suite *BookServiceTestSuite) SetupTest() {
	suite.mockBookRepo = new(MockBookRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewBookService(suite.mockBookRepo, suite.mockEntryRepo, suite.mockAccountRepo)
	suite.book = domain.Book{
		BookID:        uuid.NewString(),
		Name:          "MyBook",
		QuoteCurrency: "ZAR",
	}
}

func (suite *BookServiceTestSuite) TestGetOrCreateBook_Creates() {
	ctx := context.Background()

	suite.mockBookRepo.On("FindBookByName", ctx, "MyBook").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookRepo.On("InsertBook", ctx, mock.AnythingOfType("domain.Book")).Return(nil).Once()
	suite.mockBookRepo.On("FindBookByName", ctx, "MyBook").Return(&suite.book, nil).Once()

	book, isNew, err := suite.service.GetOrCreateBook(ctx, "MyBook", "ZAR")

	suite.Require().NoError(err)
	suite.True(isNew)
	suite.Equal("MyBook", book.Name)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *BookServiceTestSuite) TestGetOrCreateBook_Existing() {
	ctx := context.Background()

	suite.mockBookRepo.On("FindBookByName", ctx, "MyBook").Return(&suite.book, nil).Once()

	book, isNew, err := suite.service.GetOrCreateBook(ctx, "MyBook", "ZAR")

	suite.Require().NoError(err)
	suite.False(isNew)
	suite.Equal(suite.book.BookID, book.BookID)
	suite.mockBookRepo.AssertNotCalled(suite.T(), "InsertBook", mock.Anything, mock.Anything)
}

func (suite *BookServiceTestSuite) TestGetOrCreateBook_CurrencyMismatch() {
	ctx := context.Background()

	suite.mockBookRepo.On("FindBookByName", ctx, "MyBook").Return(&suite.book, nil).Once()

	_, _, err := suite.service.GetOrCreateBook(ctx, "MyBook", "USD")

	suite.Require().Error(err)
	suite.Equal(apperrors.MismatchedCurrency, apperrors.CodeOf(err))
}

func (suite *BookServiceTestSuite) TestGetOrCreateBook_LosesInsertRace() {
	ctx := context.Background()

	suite.mockBookRepo.On("FindBookByName", ctx, "MyBook").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBookRepo.On("InsertBook", ctx, mock.AnythingOfType("domain.Book")).Return(apperrors.ErrDuplicate).Once()
	suite.mockBookRepo.On("FindBookByName", ctx, "MyBook").Return(&suite.book, nil).Once()

	book, isNew, err := suite.service.GetOrCreateBook(ctx, "MyBook", "ZAR")

	suite.Require().NoError(err)
	suite.False(isNew)
	suite.Equal(suite.book.BookID, book.BookID)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *BookServiceTestSuite) TestGetBookByID_NotFound() {
	ctx := context.Background()
	bookID := uuid.NewString()

	suite.mockBookRepo.On("FindBookByID", ctx, bookID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBookByID(ctx, bookID)

	suite.Require().Error(err)
	suite.Equal(apperrors.BookDoesNotExist, apperrors.CodeOf(err))
}

func (suite *BookServiceTestSuite) TestGetBalance_InQuoteCurrency() {
	ctx := context.Background()
	filter := domain.TransactionFilter{Accounts: []string{"Assets"}}
	aggregate := domain.BalanceResult{
		CreditTotal:     decimal.NewFromInt(1600),
		DebitTotal:      decimal.Zero,
		Currency:        "USD",
		NumTransactions: 3,
	}

	suite.mockEntryRepo.On("AggregateBalance", ctx, suite.book.BookID, filter, true).Return(aggregate, nil).Once()

	balance, err := suite.service.GetBalance(ctx, &suite.book, filter, true)

	suite.Require().NoError(err)
	suite.Equal("ZAR", balance.Currency, "quote-currency balances report the book currency")
	suite.True(balance.Balance.Equal(decimal.NewFromInt(1600)))
	suite.Equal(3, balance.NumTransactions)
}

func (suite *BookServiceTestSuite) TestGetBalance_EmptyMatch() {
	ctx := context.Background()
	filter := domain.TransactionFilter{Accounts: []string{"Nothing"}}

	suite.mockEntryRepo.On("AggregateBalance", ctx, suite.book.BookID, filter, false).Return(domain.BalanceResult{}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, &suite.book, filter, false)

	suite.Require().NoError(err)
	suite.True(balance.Balance.IsZero())
	suite.Equal(0, balance.NumTransactions)
}

func (suite *BookServiceTestSuite) TestGetLedger() {
	ctx := context.Background()
	filter := domain.TransactionFilter{PerPage: 10, Page: 1}
	entries := []domain.JournalEntry{{EntryID: uuid.NewString()}, {EntryID: uuid.NewString()}}

	suite.mockEntryRepo.On("CountEntries", ctx, suite.book.BookID, filter).Return(7, nil).Once()
	suite.mockEntryRepo.On("FindEntries", ctx, suite.book.BookID, filter).Return(entries, nil).Once()

	count, got, err := suite.service.GetLedger(ctx, &suite.book, filter)

	suite.Require().NoError(err)
	suite.Equal(7, count)
	suite.Len(got, 2)
}

func (suite *BookServiceTestSuite) TestListAccounts_ExpandsClosure() {
	ctx := context.Background()

	suite.mockEntryRepo.On("DistinctAccounts", ctx, suite.book.BookID).Return([]string{"Assets:Bank", "Income"}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, &suite.book)

	suite.Require().NoError(err)
	suite.Equal([]string{"Assets", "Assets:Bank", "Income"}, accounts)
}

func (suite *BookServiceTestSuite) TestMarkToMarket() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	groups := []domain.AccountBalance{
		{Account: "Assets:Foreign", Currency: "USD", Balance: decimal.NewFromInt(100)},
		{Account: "Assets:Local", Currency: "ZAR", Balance: decimal.NewFromInt(-500)},
	}

	suite.mockEntryRepo.On("GroupBalancesByAccount", ctx, suite.book.BookID, filter).Return(groups, nil).Once()

	// ZAR is base; USD at 0.1 means 1 USD = 10 ZAR.
	result, err := suite.service.MarkToMarket(ctx, &suite.book, filter, map[string]float64{"ZAR": 1, "USD": 0.1})

	suite.Require().NoError(err)
	suite.True(result.Accounts["Assets:Foreign"].Equal(decimal.NewFromInt(1000)), "got %s", result.Accounts["Assets:Foreign"])
	suite.True(result.Accounts["Assets:Local"].Equal(decimal.NewFromInt(-500)))
	suite.True(result.UnrealizedProfit.Equal(decimal.NewFromInt(500)), "got %s", result.UnrealizedProfit)
}

func (suite *BookServiceTestSuite) TestMarkToMarket_NoRates() {
	ctx := context.Background()

	_, err := suite.service.MarkToMarket(ctx, &suite.book, domain.TransactionFilter{}, map[string]float64{"USD": 0.1})

	suite.Require().Error(err)
	suite.Equal(apperrors.MissingInput, apperrors.CodeOf(err))
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "GroupBalancesByAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookServiceTestSuite) TestMarkToMarket_MissingRateForCurrency() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	groups := []domain.AccountBalance{
		{Account: "Assets:Foreign", Currency: "EUR", Balance: decimal.NewFromInt(100)},
	}

	suite.mockEntryRepo.On("GroupBalancesByAccount", ctx, suite.book.BookID, filter).Return(groups, nil).Once()

	_, err := suite.service.MarkToMarket(ctx, &suite.book, filter, map[string]float64{"ZAR": 1, "USD": 0.1})

	suite.Require().Error(err)
	suite.Equal(apperrors.ExchangeRateNotFound, apperrors.CodeOf(err))
}

func (suite *BookServiceTestSuite) TestMarkToMarket_ZeroRateForCurrency() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	groups := []domain.AccountBalance{
		{Account: "Assets:Foreign", Currency: "USD", Balance: decimal.NewFromInt(100)},
	}

	suite.mockEntryRepo.On("GroupBalancesByAccount", ctx, suite.book.BookID, filter).Return(groups, nil).Once()

	// A zero rate is unusable; it must fail like a missing one, not
	// divide by zero.
	_, err := suite.service.MarkToMarket(ctx, &suite.book, filter, map[string]float64{"ZAR": 1, "USD": 0})

	suite.Require().Error(err)
	suite.Equal(apperrors.ExchangeRateNotFound, apperrors.CodeOf(err))
}

func (suite *BookServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountName: "Assets:Bank", ToIncrease: domain.Debit},
		{AccountName: "Income:Sales", ToIncrease: domain.Credit},
	}

	suite.mockAccountRepo.On("ListAccountsByBook", ctx, suite.book.BookID).Return(accounts, nil).Once()
	suite.mockEntryRepo.On("AggregateBalance", ctx, suite.book.BookID, domain.TransactionFilter{Accounts: []string{"Assets:Bank"}}, false).
		Return(domain.BalanceResult{CreditTotal: decimal.Zero, DebitTotal: decimal.NewFromInt(100), NumTransactions: 1}, nil).Once()
	suite.mockEntryRepo.On("AggregateBalance", ctx, suite.book.BookID, domain.TransactionFilter{Accounts: []string{"Income:Sales"}}, false).
		Return(domain.BalanceResult{CreditTotal: decimal.NewFromInt(100), DebitTotal: decimal.Zero, NumTransactions: 1}, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, &suite.book)

	suite.Require().NoError(err)
	suite.True(tb.IsBalanced)
	suite.Len(tb.Rows, 2)
	suite.True(tb.CreditTotal.Equal(decimal.NewFromInt(100)))
	suite.True(tb.DebitTotal.Equal(decimal.NewFromInt(100)))
}

func (suite *BookServiceTestSuite) TestTrialBalance_Unbalanced() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountName: "Assets:Bank", ToIncrease: domain.Debit},
	}

	suite.mockAccountRepo.On("ListAccountsByBook", ctx, suite.book.BookID).Return(accounts, nil).Once()
	suite.mockEntryRepo.On("AggregateBalance", ctx, suite.book.BookID, domain.TransactionFilter{Accounts: []string{"Assets:Bank"}}, false).
		Return(domain.BalanceResult{CreditTotal: decimal.Zero, DebitTotal: decimal.NewFromInt(100), NumTransactions: 1}, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, &suite.book)

	suite.Require().NoError(err)
	suite.False(tb.IsBalanced)
}

func TestBookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookServiceTestSuite))
}
