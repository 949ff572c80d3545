package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portsrepo "github.com/ale-project/ale_backend/internal/core/ports/repositories"
)

type PgxEntryRepository struct {
	querier Querier
	// beginner is nil when the repository is already bound to a
	// transaction; WithTx then just runs fn against the same unit.
	beginner Beginner
}

// NewEntryRepository creates a new repository for journal entry and
// transaction data.
func NewEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{querier: pool, beginner: pool}
}

var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

// WithTx runs fn against a repository bound to one database transaction,
// committing on nil and rolling back otherwise.
func (r *PgxEntryRepository) WithTx(ctx context.Context, fn func(txRepo portsrepo.EntryRepository) error) error {
	if r.beginner == nil {
		return fn(r)
	}
	tx, err := r.beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // No-op after commit
	}()

	if err := fn(&PgxEntryRepository{querier: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveEntry persists the entry and all its transactions. When called on a
// pool-bound repository it opens its own transaction; inside WithTx it
// joins the surrounding one.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, transactions []domain.Transaction) error {
	if r.beginner != nil {
		return r.WithTx(ctx, func(txRepo portsrepo.EntryRepository) error {
			return txRepo.SaveEntry(ctx, entry, transactions)
		})
	}

	entryQuery := `
		INSERT INTO journal_entries (entry_id, book_id, memo, timestamp, quote_currency, voided, void_reason, approved, original_entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.querier.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.BookID,
		entry.Memo,
		entry.Timestamp,
		entry.QuoteCurrency,
		entry.Voided,
		entry.VoidReason,
		entry.Approved,
		entry.OriginalEntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	txnQuery := `
		INSERT INTO transactions (transaction_id, entry_id, book_id, account, credit, debit, currency, exchange_rate, timestamp, voided, void_reason, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, txn := range transactions {
		_, err := r.querier.Exec(ctx, txnQuery,
			txn.TransactionID,
			txn.EntryID,
			txn.BookID,
			txn.Account,
			txn.Credit,
			txn.Debit,
			txn.Currency,
			txn.ExchangeRate,
			txn.Timestamp,
			txn.Voided,
			txn.VoidReason,
			txn.Approved,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction for entry %s: %w", entry.EntryID, err)
		}
	}
	return nil
}

const entryColumns = `entry_id, book_id, memo, timestamp, quote_currency, voided, void_reason, approved, original_entry_id`

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE entry_id = $1;`, entryColumns)
	var entry domain.JournalEntry
	err := r.querier.QueryRow(ctx, query, entryID).Scan(
		&entry.EntryID,
		&entry.BookID,
		&entry.Memo,
		&entry.Timestamp,
		&entry.QuoteCurrency,
		&entry.Voided,
		&entry.VoidReason,
		&entry.Approved,
		&entry.OriginalEntryID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return &entry, nil
}

const txnColumns = `transaction_id, entry_id, book_id, account, credit, debit, currency, exchange_rate, timestamp, voided, void_reason, approved`

// FindTransactionsByEntryID retrieves all transactions of one entry.
func (r *PgxEntryRepository) FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE entry_id = $1 ORDER BY timestamp, transaction_id;`, txnColumns)
	rows, err := r.querier.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for entry %s: %w", entryID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// MarkEntryVoided flips voided/voidReason on the entry row.
func (r *PgxEntryRepository) MarkEntryVoided(ctx context.Context, entryID string, reason string) error {
	query := `UPDATE journal_entries SET voided = TRUE, void_reason = $2 WHERE entry_id = $1;`
	tag, err := r.querier.Exec(ctx, query, entryID, reason)
	if err != nil {
		return fmt.Errorf("failed to void journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkTransactionsVoided flips voided/voidReason on every transaction of
// the entry.
func (r *PgxEntryRepository) MarkTransactionsVoided(ctx context.Context, entryID string, reason string) error {
	query := `UPDATE transactions SET voided = TRUE, void_reason = $2 WHERE entry_id = $1;`
	if _, err := r.querier.Exec(ctx, query, entryID, reason); err != nil {
		return fmt.Errorf("failed to void transactions for entry %s: %w", entryID, err)
	}
	return nil
}

// entryFilterSQL translates the filter into WHERE clauses against
// journal_entries. Account filtering does not apply to entry headers.
func entryFilterSQL(bookID string, filter domain.TransactionFilter, args *[]any) string {
	clauses := []string{}
	*args = append(*args, bookID)
	clauses = append(clauses, fmt.Sprintf("book_id = $%d", len(*args)))

	if filter.StartDate != nil {
		*args = append(*args, *filter.StartDate)
		clauses = append(clauses, fmt.Sprintf("timestamp >= $%d", len(*args)))
	}
	if filter.EndDate != nil {
		*args = append(*args, *filter.EndDate)
		clauses = append(clauses, fmt.Sprintf("timestamp <= $%d", len(*args)))
	}
	if filter.Memo != "" {
		// A memo filter also matches the reversal entries derived from it.
		*args = append(*args, filter.Memo, filter.Memo+domain.ReversedMemoSuffix)
		clauses = append(clauses, fmt.Sprintf("memo IN ($%d, $%d)", len(*args)-1, len(*args)))
	}
	if filter.EntryID != "" {
		*args = append(*args, filter.EntryID)
		clauses = append(clauses, fmt.Sprintf("entry_id = $%d", len(*args)))
	}
	return strings.Join(clauses, " AND ")
}

// txnFilterSQL translates the filter into WHERE clauses against
// transactions. Each account entry matches itself and all descendants via
// prefix match.
func txnFilterSQL(bookID string, filter domain.TransactionFilter, args *[]any) string {
	clauses := []string{}
	*args = append(*args, bookID)
	clauses = append(clauses, fmt.Sprintf("book_id = $%d", len(*args)))

	if len(filter.Accounts) > 0 {
		accountClauses := make([]string, 0, len(filter.Accounts))
		for _, account := range filter.Accounts {
			*args = append(*args, account+"%")
			accountClauses = append(accountClauses, fmt.Sprintf("account LIKE $%d", len(*args)))
		}
		clauses = append(clauses, "("+strings.Join(accountClauses, " OR ")+")")
	}
	if filter.StartDate != nil {
		*args = append(*args, *filter.StartDate)
		clauses = append(clauses, fmt.Sprintf("timestamp >= $%d", len(*args)))
	}
	if filter.EndDate != nil {
		*args = append(*args, *filter.EndDate)
		clauses = append(clauses, fmt.Sprintf("timestamp <= $%d", len(*args)))
	}
	if filter.Memo != "" {
		// Transactions carry no memo column; match through their entry
		// header, reversal entries included.
		*args = append(*args, filter.Memo, filter.Memo+domain.ReversedMemoSuffix)
		clauses = append(clauses, fmt.Sprintf("entry_id IN (SELECT entry_id FROM journal_entries WHERE memo IN ($%d, $%d))", len(*args)-1, len(*args)))
	}
	if filter.EntryID != "" {
		*args = append(*args, filter.EntryID)
		clauses = append(clauses, fmt.Sprintf("entry_id = $%d", len(*args)))
	}
	return strings.Join(clauses, " AND ")
}

func orderAndPageSQL(filter domain.TransactionFilter, args *[]any) string {
	direction := "ASC"
	if filter.NewestFirst {
		direction = "DESC"
	}
	sql := fmt.Sprintf(" ORDER BY timestamp %s", direction)
	if filter.PerPage > 0 {
		*args = append(*args, filter.PerPage)
		sql += fmt.Sprintf(" LIMIT $%d", len(*args))
		*args = append(*args, filter.Offset())
		sql += fmt.Sprintf(" OFFSET $%d", len(*args))
	}
	return sql
}

// FindEntries returns the matching entry headers with their transactions
// populated, ordered by timestamp.
func (r *PgxEntryRepository) FindEntries(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.JournalEntry, error) {
	args := []any{}
	where := entryFilterSQL(bookID, filter, &args)
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE %s%s;`, entryColumns, where, orderAndPageSQL(filter, &args))

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for book %s: %w", bookID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []string{}
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.BookID,
			&entry.Memo,
			&entry.Timestamp,
			&entry.QuoteCurrency,
			&entry.Voided,
			&entry.VoidReason,
			&entry.Approved,
			&entry.OriginalEntryID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	txnQuery := fmt.Sprintf(`SELECT %s FROM transactions WHERE entry_id = ANY($1) ORDER BY timestamp, transaction_id;`, txnColumns)
	txnRows, err := r.querier.Query(ctx, txnQuery, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for entries: %w", err)
	}
	defer txnRows.Close()

	transactions, err := scanTransactions(txnRows)
	if err != nil {
		return nil, err
	}
	byEntry := make(map[string][]domain.Transaction, len(entries))
	for _, txn := range transactions {
		byEntry[txn.EntryID] = append(byEntry[txn.EntryID], txn)
	}
	for i := range entries {
		entries[i].Transactions = byEntry[entries[i].EntryID]
	}
	return entries, nil
}

// CountEntries counts the entries matched by the filter before
// pagination.
func (r *PgxEntryRepository) CountEntries(ctx context.Context, bookID string, filter domain.TransactionFilter) (int, error) {
	args := []any{}
	where := entryFilterSQL(bookID, filter, &args)
	query := fmt.Sprintf(`SELECT COUNT(entry_id) FROM journal_entries WHERE %s;`, where)

	var count int
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count journal entries for book %s: %w", bookID, err)
	}
	return count, nil
}

// FindTransactions returns the matching transactions ordered by
// timestamp.
func (r *PgxEntryRepository) FindTransactions(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := []any{}
	where := txnFilterSQL(bookID, filter, &args)
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s%s;`, txnColumns, where, orderAndPageSQL(filter, &args))

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for book %s: %w", bookID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// AggregateBalance sums credits and debits over the matched transactions.
// With inQuoteCurrency each row is multiplied by its stored exchange rate
// before summing. MAX(currency) matches the assumed-homogeneous currency
// of the matched rows.
func (r *PgxEntryRepository) AggregateBalance(ctx context.Context, bookID string, filter domain.TransactionFilter, inQuoteCurrency bool) (domain.BalanceResult, error) {
	creditExpr, debitExpr := "credit", "debit"
	if inQuoteCurrency {
		creditExpr = "credit * exchange_rate"
		debitExpr = "debit * exchange_rate"
	}

	args := []any{}
	where := txnFilterSQL(bookID, filter, &args)
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(%s), 0), COALESCE(SUM(%s), 0), COUNT(transaction_id), COALESCE(MAX(currency), '')
		FROM transactions WHERE %s;`, creditExpr, debitExpr, where)

	var result domain.BalanceResult
	err := r.querier.QueryRow(ctx, query, args...).Scan(
		&result.CreditTotal,
		&result.DebitTotal,
		&result.NumTransactions,
		&result.Currency,
	)
	if err != nil {
		return domain.BalanceResult{}, fmt.Errorf("failed to aggregate balance for book %s: %w", bookID, err)
	}
	return result, nil
}

// GroupBalancesByAccount returns the net credit - debit balance per
// distinct (account, currency) pair among the matched transactions.
func (r *PgxEntryRepository) GroupBalancesByAccount(ctx context.Context, bookID string, filter domain.TransactionFilter) ([]domain.AccountBalance, error) {
	args := []any{}
	where := txnFilterSQL(bookID, filter, &args)
	query := fmt.Sprintf(`
		SELECT account, currency, SUM(credit - debit)
		FROM transactions WHERE %s
		GROUP BY account, currency
		ORDER BY account, currency;`, where)

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account balances for book %s: %w", bookID, err)
	}
	defer rows.Close()

	balances := []domain.AccountBalance{}
	for rows.Next() {
		var balance domain.AccountBalance
		if err := rows.Scan(&balance.Account, &balance.Currency, &balance.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account balance row: %w", err)
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}
	return balances, nil
}

// DistinctAccounts lists the distinct account paths used in the book.
func (r *PgxEntryRepository) DistinctAccounts(ctx context.Context, bookID string) ([]string, error) {
	query := `SELECT DISTINCT account FROM transactions WHERE book_id = $1 ORDER BY account;`
	rows, err := r.querier.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for book %s: %w", bookID, err)
	}
	defer rows.Close()

	accounts := []string{}
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var credit, debit, rate decimal.Decimal
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.EntryID,
			&txn.BookID,
			&txn.Account,
			&credit,
			&debit,
			&txn.Currency,
			&rate,
			&txn.Timestamp,
			&txn.Voided,
			&txn.VoidReason,
			&txn.Approved,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn.Credit = credit
		txn.Debit = debit
		txn.ExchangeRate = rate
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}
