package dto

import (
	"time"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// CreateBookRequest is the body of POST /books. Missing fields are
// reported with MissingInput rather than a binding failure, so no
// required tags here.
type CreateBookRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// BookResponse is the public projection of a book.
type BookResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBookResponse merges the book fields with the outcome of the
// idempotent create: success reports whether this call created the book.
type CreateBookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	BookResponse
}

// ToBookResponse converts a domain.Book to its response projection.
func ToBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:        book.BookID,
		Name:      book.Name,
		Currency:  book.QuoteCurrency,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}

// ToBookResponses converts a slice of domain.Book.
func ToBookResponses(books []domain.Book) []BookResponse {
	responses := make([]BookResponse, len(books))
	for i := range books {
		responses[i] = ToBookResponse(&books[i])
	}
	return responses
}
