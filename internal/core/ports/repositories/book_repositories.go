package repositories

import (
	"context"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// BookRepository persists books. InsertBook returns apperrors.ErrDuplicate
// on a name collision so that getOrCreate can tolerate the check-then-act
// race by re-fetching instead of failing.
type BookRepository interface {
	InsertBook(ctx context.Context, book domain.Book) error
	FindBookByName(ctx context.Context, name string) (*domain.Book, error)
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	// DeleteBook cascade-deletes the book with its entries and
	// transactions. Administrative use only.
	DeleteBook(ctx context.Context, bookID string) error
}
