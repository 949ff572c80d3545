package domain

import "time"

// Book is a named ledger whose balances are reported in a fixed quote
// currency. A book owns journal entries, which in turn own transactions.
type Book struct {
	BookID        string    `json:"id"`
	Name          string    `json:"name"`
	QuoteCurrency string    `json:"currency"` // Immutable after creation
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
