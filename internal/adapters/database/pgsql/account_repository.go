package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portsrepo "github.com/ale-project/ale_backend/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	querier Querier
}

// NewAccountRepository creates a new repository for registered account
// metadata.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{querier: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, book_id, account_code, account_name, to_increase, classification, account_type, sub_type, memo, created_at, updated_at`

// InsertAccount inserts a registered account. Collisions on the unique
// account code or name surface as apperrors.ErrDuplicate.
func (r *PgxAccountRepository) InsertAccount(ctx context.Context, account domain.Account) error {
	query := fmt.Sprintf(`
		INSERT INTO accounts (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`, accountColumns)
	_, err := r.querier.Exec(ctx, query,
		account.AccountID,
		account.BookID,
		account.AccountCode,
		account.AccountName,
		account.ToIncrease,
		account.Classification,
		account.AccountType,
		account.SubType,
		account.Memo,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert account %d: %w", account.AccountCode, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, bookID string, accountCode int) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE book_id = $1 AND account_code = $2;`, accountColumns)
	var account domain.Account
	err := r.querier.QueryRow(ctx, query, bookID, accountCode).Scan(
		&account.AccountID,
		&account.BookID,
		&account.AccountCode,
		&account.AccountName,
		&account.ToIncrease,
		&account.Classification,
		&account.AccountType,
		&account.SubType,
		&account.Memo,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %d: %w", accountCode, err)
	}
	return &account, nil
}

// ListAccountsByBook returns registered accounts ordered by code.
func (r *PgxAccountRepository) ListAccountsByBook(ctx context.Context, bookID string) ([]domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE book_id = $1 ORDER BY account_code;`, accountColumns)
	rows, err := r.querier.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for book %s: %w", bookID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.AccountID,
			&account.BookID,
			&account.AccountCode,
			&account.AccountName,
			&account.ToIncrease,
			&account.Classification,
			&account.AccountType,
			&account.SubType,
			&account.Memo,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
