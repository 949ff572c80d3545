package services

import (
	"context"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// BookSvcFacade exposes book lifecycle and the read-side queries that run
// through a book.
type BookSvcFacade interface {
	// GetOrCreateBook is an idempotent create-or-fetch keyed on the unique
	// name. The bool reports whether the book was created by this call.
	// Requesting an existing name with a different currency fails with
	// MismatchedCurrency: quote currency is immutable after creation.
	GetOrCreateBook(ctx context.Context, name string, quoteCurrency string) (*domain.Book, bool, error)
	GetBookByName(ctx context.Context, name string) (*domain.Book, error)
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	DeleteBook(ctx context.Context, bookID string) error

	GetBalance(ctx context.Context, book *domain.Book, filter domain.TransactionFilter, inQuoteCurrency bool) (domain.BalanceResult, error)
	GetLedger(ctx context.Context, book *domain.Book, filter domain.TransactionFilter) (int, []domain.JournalEntry, error)
	GetTransactions(ctx context.Context, book *domain.Book, filter domain.TransactionFilter) ([]domain.Transaction, error)
	ListAccounts(ctx context.Context, book *domain.Book) ([]string, error)
	MarkToMarket(ctx context.Context, book *domain.Book, filter domain.TransactionFilter, exchangeRates map[string]float64) (domain.MarkToMarketResult, error)
	TrialBalance(ctx context.Context, book *domain.Book) (domain.TrialBalance, error)
}
