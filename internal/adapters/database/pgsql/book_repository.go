package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portsrepo "github.com/ale-project/ale_backend/internal/core/ports/repositories"
)

type PgxBookRepository struct {
	querier Querier
}

// NewBookRepository creates a new repository for book data.
func NewBookRepository(pool *pgxpool.Pool) portsrepo.BookRepository {
	return &PgxBookRepository{querier: pool}
}

var _ portsrepo.BookRepository = (*PgxBookRepository)(nil)

// InsertBook inserts a book row. A name collision surfaces as
// apperrors.ErrDuplicate so the caller can resolve the create race.
func (r *PgxBookRepository) InsertBook(ctx context.Context, book domain.Book) error {
	query := `
		INSERT INTO books (book_id, name, quote_currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4);
	`
	now := time.Now().UTC()
	_, err := r.querier.Exec(ctx, query, book.BookID, book.Name, book.QuoteCurrency, now)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert book %s: %w", book.Name, err)
	}
	return nil
}

func (r *PgxBookRepository) FindBookByName(ctx context.Context, name string) (*domain.Book, error) {
	query := `
		SELECT book_id, name, quote_currency, created_at, updated_at
		FROM books
		WHERE name = $1;
	`
	return r.scanBook(r.querier.QueryRow(ctx, query, name))
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `
		SELECT book_id, name, quote_currency, created_at, updated_at
		FROM books
		WHERE book_id = $1;
	`
	return r.scanBook(r.querier.QueryRow(ctx, query, bookID))
}

func (r *PgxBookRepository) scanBook(row pgx.Row) (*domain.Book, error) {
	var book domain.Book
	err := row.Scan(&book.BookID, &book.Name, &book.QuoteCurrency, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan book row: %w", err)
	}
	return &book, nil
}

// ListBooks returns all books ordered by name ascending.
func (r *PgxBookRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	query := `
		SELECT book_id, name, quote_currency, created_at, updated_at
		FROM books
		ORDER BY name;
	`
	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(&book.BookID, &book.Name, &book.QuoteCurrency, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}

// DeleteBook removes the book; entries and transactions go with it via
// ON DELETE CASCADE.
func (r *PgxBookRepository) DeleteBook(ctx context.Context, bookID string) error {
	tag, err := r.querier.Exec(ctx, `DELETE FROM books WHERE book_id = $1;`, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book %s: %w", bookID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
