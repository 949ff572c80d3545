package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portsrepo "github.com/ale-project/ale_backend/internal/core/ports/repositories"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/middleware"
)

// accountService manages registered account metadata.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// RegisterAccount creates the account unless its code is already taken.
// The account name doubles as an account path for balance queries, so its
// depth is validated here too.
func (s *accountService) RegisterAccount(ctx context.Context, bookID string, account domain.Account) (*domain.Account, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := domain.ParseAccountPath(account.AccountName); err != nil {
		return nil, false, err
	}
	if account.ToIncrease != domain.Debit && account.ToIncrease != domain.Credit {
		return nil, false, apperrors.Newf(apperrors.ValidationError,
			"toIncrease must be %s or %s", domain.Debit, domain.Credit)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, bookID, account.AccountCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, apperrors.Wrap(apperrors.DatabaseQueryError, err, "account query failed")
	}
	if existing != nil {
		return nil, false, apperrors.New(apperrors.DatabaseQueryError, "account code already exists")
	}

	now := time.Now().UTC()
	account.AccountID = uuid.NewString()
	account.BookID = bookID
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := s.accountRepo.InsertAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race on code or name uniqueness.
			return nil, false, apperrors.New(apperrors.DatabaseQueryError, "account code already exists")
		}
		return nil, false, apperrors.Wrap(apperrors.DatabaseUpdateError, err, "failed to create account")
	}

	logger.Info("Account registered",
		slog.String("account_id", account.AccountID),
		slog.Int("account_code", account.AccountCode),
		slog.String("account_name", account.AccountName))
	return &account, true, nil
}

// ListRegisteredAccounts returns the accounts registered against a book.
func (s *accountService) ListRegisteredAccounts(ctx context.Context, bookID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByBook(ctx, bookID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "account query failed")
	}
	return accounts, nil
}
