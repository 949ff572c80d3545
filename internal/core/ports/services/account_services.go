package services

import (
	"context"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// AccountSvcFacade manages registered account metadata. Registration is
// optional; transactions may reference unregistered paths freely.
type AccountSvcFacade interface {
	// RegisterAccount creates the account unless its code is already
	// taken. The bool reports whether this call created it.
	RegisterAccount(ctx context.Context, bookID string, account domain.Account) (*domain.Account, bool, error)
	ListRegisteredAccounts(ctx context.Context, bookID string) ([]domain.Account, error)
}
