package repositories

import (
	"context"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// EntryRepository persists journal entries and their transactions and
// answers the aggregate queries behind balances, ledgers and
// mark-to-market.
type EntryRepository interface {
	// SaveEntry persists the entry and all its transactions atomically:
	// either every row exists afterwards or none do.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, transactions []domain.Transaction) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error)

	// MarkEntryVoided flips voided/voidReason on the entry row.
	MarkEntryVoided(ctx context.Context, entryID string, reason string) error
	// MarkTransactionsVoided flips voided/voidReason on every transaction
	// of the entry.
	MarkTransactionsVoided(ctx context.Context, entryID string, reason string) error

	FindEntries(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.JournalEntry, error)
	CountEntries(ctx context.Context, bookID string, filter domain.TransactionFilter) (int, error)
	FindTransactions(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// AggregateBalance sums credit/debit over matched transactions. When
	// inQuoteCurrency is set, each row is multiplied by its stored
	// exchange rate before summing.
	AggregateBalance(ctx context.Context, bookID string, filter domain.TransactionFilter, inQuoteCurrency bool) (domain.BalanceResult, error)
	// GroupBalancesByAccount returns net credit-debit per distinct
	// (account, currency) pair among matched transactions.
	GroupBalancesByAccount(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.AccountBalance, error)
	// DistinctAccounts lists the distinct account paths used in the book.
	DistinctAccounts(ctx context.Context, bookID string) ([]string, error)

	// WithTx runs fn against a repository bound to a single database
	// transaction, committing when fn returns nil and rolling back
	// otherwise. Used by the void protocol, which must mark the original
	// void and commit the reversal as one unit.
	WithTx(ctx context.Context, fn func(txRepo EntryRepository) error) error
}
