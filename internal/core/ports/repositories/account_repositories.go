package repositories

import (
	"context"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// AccountRepository persists registered account metadata. InsertAccount
// returns apperrors.ErrDuplicate when the account code or name is taken.
type AccountRepository interface {
	InsertAccount(ctx context.Context, account domain.Account) error
	FindAccountByCode(ctx context.Context, bookID string, accountCode int) (*domain.Account, error)
	ListAccountsByBook(ctx context.Context, bookID string) ([]domain.Account, error)
}
