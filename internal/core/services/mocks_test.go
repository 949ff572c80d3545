package services_test

import (
	"context"

	"github.com/ale-project/ale_backend/internal/core/domain"
	portsrepo "github.com/ale-project/ale_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock BookRepository ---

type MockBookRepository struct {
	mock.Mock
}

var _ portsrepo.BookRepository = (*MockBookRepository)(nil)

func (m *MockBookRepository) InsertBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindBookByName(ctx context.Context, name string) (*domain.Book, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) DeleteBook(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepository = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, transactions []domain.Transaction) error {
	args := m.Called(ctx, entry, transactions)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockEntryRepository) MarkEntryVoided(ctx context.Context, entryID string, reason string) error {
	args := m.Called(ctx, entryID, reason)
	return args.Error(0)
}

func (m *MockEntryRepository) MarkTransactionsVoided(ctx context.Context, entryID string, reason string) error {
	args := m.Called(ctx, entryID, reason)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntries(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, bookID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) CountEntries(ctx context.Context, bookID string, filter domain.TransactionFilter) (int, error) {
	args := m.Called(ctx, bookID, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) FindTransactions(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, bookID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockEntryRepository) AggregateBalance(ctx context.Context, bookID string, filter domain.TransactionFilter, inQuoteCurrency bool) (domain.BalanceResult, error) {
	args := m.Called(ctx, bookID, filter, inQuoteCurrency)
	return args.Get(0).(domain.BalanceResult), args.Error(1)
}

func (m *MockEntryRepository) GroupBalancesByAccount(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, bookID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockEntryRepository) DistinctAccounts(ctx context.Context, bookID string) ([]string, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// WithTx runs fn against the mock itself, standing in for the
// transaction-bound repository.
func (m *MockEntryRepository) WithTx(ctx context.Context, fn func(txRepo portsrepo.EntryRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) InsertAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, bookID string, accountCode int) (*domain.Account, error) {
	args := m.Called(ctx, bookID, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByBook(ctx context.Context, bookID string) ([]domain.Account, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
