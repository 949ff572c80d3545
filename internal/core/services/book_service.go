package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portsrepo "github.com/ale-project/ale_backend/internal/core/ports/repositories"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/middleware"
)

// bookService provides book lifecycle operations and the read-side
// queries that run through a book.
type bookService struct {
	bookRepo    portsrepo.BookRepository
	entryRepo   portsrepo.EntryRepository
	accountRepo portsrepo.AccountRepository
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo portsrepo.BookRepository, entryRepo portsrepo.EntryRepository, accountRepo portsrepo.AccountRepository) portssvc.BookSvcFacade {
	return &bookService{
		bookRepo:    bookRepo,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BookSvcFacade = (*bookService)(nil)

// GetOrCreateBook creates the book unless the name is taken, in which
// case the existing book is returned after its currency is checked.
// Insert-first: a unique-violation from a concurrent create is treated as
// "already exists" and resolved by re-fetching.
func (s *bookService) GetOrCreateBook(ctx context.Context, name string, quoteCurrency string) (*domain.Book, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.bookRepo.FindBookByName(ctx, name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, apperrors.Wrap(apperrors.DatabaseQueryError, err, "error getting book info")
	}
	if existing == nil {
		book := domain.Book{
			BookID:        uuid.NewString(),
			Name:          name,
			QuoteCurrency: quoteCurrency,
		}
		err = s.bookRepo.InsertBook(ctx, book)
		if err == nil {
			logger.Info("Book created", slog.String("book_id", book.BookID), slog.String("name", name), slog.String("currency", quoteCurrency))
			created, err := s.bookRepo.FindBookByName(ctx, name)
			if err != nil {
				return nil, false, apperrors.Wrap(apperrors.DatabaseQueryError, err, "book query failed to return expected result")
			}
			return created, true, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, false, apperrors.Wrap(apperrors.DatabaseUpdateError, err, "failed to create book")
		}
		// Lost the race: another request inserted the same name first.
		existing, err = s.bookRepo.FindBookByName(ctx, name)
		if err != nil {
			return nil, false, apperrors.Wrap(apperrors.DatabaseQueryError, err, "book query failed to return expected result")
		}
	}

	if quoteCurrency != "" && existing.QuoteCurrency != quoteCurrency {
		return nil, false, apperrors.Newf(apperrors.MismatchedCurrency,
			"requested base currency does not match existing base currency. Requested: %s. Current: %s",
			quoteCurrency, existing.QuoteCurrency)
	}
	return existing, false, nil
}

// GetBookByName fetches a book or fails with BookDoesNotExist.
func (s *bookService) GetBookByName(ctx context.Context, name string) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.BookDoesNotExist, "book %s does not exist", name)
		}
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "error getting book info")
	}
	return book, nil
}

// GetBookByID fetches a book by id or fails with BookDoesNotExist.
func (s *bookService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.BookDoesNotExist, "book with id %s does not exist", bookID)
		}
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "error getting book info")
	}
	return book, nil
}

// ListBooks returns all books sorted by name ascending.
func (s *bookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.bookRepo.ListBooks(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "book query failed")
	}
	return books, nil
}

// DeleteBook cascade-deletes a book with all its entries and
// transactions. Administrative operation only.
func (s *bookService) DeleteBook(ctx context.Context, bookID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.bookRepo.DeleteBook(ctx, bookID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.BookDoesNotExist, "book with id %s does not exist", bookID)
		}
		return apperrors.Wrap(apperrors.DatabaseUpdateError, err, "failed to delete book")
	}
	logger.Info("Book deleted", slog.String("book_id", bookID))
	return nil
}

// GetBalance aggregates credit/debit totals over the transactions matched
// by the filter. With inQuoteCurrency, each row is converted through its
// stored exchange rate and the result currency is the book's quote
// currency. Zero matching rows yields an all-zero result.
func (s *bookService) GetBalance(ctx context.Context, book *domain.Book, filter domain.TransactionFilter, inQuoteCurrency bool) (domain.BalanceResult, error) {
	result, err := s.entryRepo.AggregateBalance(ctx, book.BookID, filter, inQuoteCurrency)
	if err != nil {
		return domain.BalanceResult{}, apperrors.Wrap(apperrors.DatabaseQueryError, err, "balance query failed")
	}
	if inQuoteCurrency {
		result.Currency = book.QuoteCurrency
	}
	result.Balance = result.CreditTotal.Sub(result.DebitTotal)
	return result, nil
}

// GetLedger returns the matching journal entries with their transactions,
// ordered by timestamp, plus the total match count before pagination.
func (s *bookService) GetLedger(ctx context.Context, book *domain.Book, filter domain.TransactionFilter) (int, []domain.JournalEntry, error) {
	count, err := s.entryRepo.CountEntries(ctx, book.BookID, filter)
	if err != nil {
		return 0, nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "journal entry query failed")
	}
	entries, err := s.entryRepo.FindEntries(ctx, book.BookID, filter)
	if err != nil {
		return 0, nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "journal entry query failed")
	}
	return count, entries, nil
}

// GetTransactions returns the matching transactions ordered by timestamp.
func (s *bookService) GetTransactions(ctx context.Context, book *domain.Book, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	transactions, err := s.entryRepo.FindTransactions(ctx, book.BookID, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "transaction query failed")
	}
	return transactions, nil
}

// ListAccounts returns every distinct account path used in the book,
// expanded through the ancestor closure so parents of used paths are
// listed too.
func (s *bookService) ListAccounts(ctx context.Context, book *domain.Book) ([]string, error) {
	paths, err := s.entryRepo.DistinctAccounts(ctx, book.BookID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "account query failed")
	}
	return domain.ExpandAccountPaths(paths), nil
}

// MarkToMarket revalues each matched (account, currency) balance at the
// supplied current exchange rates, in quote-currency terms, and totals
// the unrealized profit.
func (s *bookService) MarkToMarket(ctx context.Context, book *domain.Book, filter domain.TransactionFilter, exchangeRates map[string]float64) (domain.MarkToMarketResult, error) {
	rates, err := domain.NormalizeRates(book.QuoteCurrency, exchangeRates)
	if err != nil {
		return domain.MarkToMarketResult{}, err
	}

	groups, err := s.entryRepo.GroupBalancesByAccount(ctx, book.BookID, filter)
	if err != nil {
		return domain.MarkToMarketResult{}, apperrors.Wrap(apperrors.DatabaseQueryError, err, "mark-to-market query failed")
	}

	result := domain.MarkToMarketResult{
		Accounts:         make(map[string]decimal.Decimal, len(groups)),
		UnrealizedProfit: decimal.Zero,
	}
	for _, group := range groups {
		rate, ok := rates[group.Currency]
		// A zero rate is as unusable as a missing one and would divide
		// by zero below.
		if !ok || rate.IsZero() {
			return domain.MarkToMarketResult{}, apperrors.Newf(apperrors.ExchangeRateNotFound,
				"a %s transaction exists, but its current exchange rate was not provided", group.Currency)
		}
		currentBalance := group.Balance.Div(rate)
		result.Accounts[group.Account] = currentBalance
		result.UnrealizedProfit = result.UnrealizedProfit.Add(currentBalance)
	}
	return result, nil
}

// TrialBalance lists every registered account with its balance and checks
// that credits and debits cancel across them.
func (s *bookService) TrialBalance(ctx context.Context, book *domain.Book) (domain.TrialBalance, error) {
	accounts, err := s.accountRepo.ListAccountsByBook(ctx, book.BookID)
	if err != nil {
		return domain.TrialBalance{}, apperrors.Wrap(apperrors.DatabaseQueryError, err, "account query failed")
	}

	tb := domain.TrialBalance{
		CreditTotal: decimal.Zero,
		DebitTotal:  decimal.Zero,
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
	}
	for _, account := range accounts {
		balance, err := s.GetBalance(ctx, book, domain.TransactionFilter{Accounts: []string{account.AccountName}}, false)
		if err != nil {
			return domain.TrialBalance{}, err
		}
		tb.CreditTotal = tb.CreditTotal.Add(balance.CreditTotal)
		tb.DebitTotal = tb.DebitTotal.Add(balance.DebitTotal)
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountName: account.AccountName,
			ToIncrease:  account.ToIncrease,
			Balance:     balance,
		})
	}
	tb.IsBalanced = tb.CreditTotal.Equal(tb.DebitTotal)
	return tb, nil
}
