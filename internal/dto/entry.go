package dto

import (
	"time"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// CreateTransactionInput is one leg of a posted journal entry. Credit and
// debit may both be given; they are netted into a single signed amount
// before the leg is built.
type CreateTransactionInput struct {
	Account      string  `json:"account" binding:"required"`
	Credit       float64 `json:"credit"`
	Debit        float64 `json:"debit"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchangeRate"`
}

// CreateEntryRequest is the body of POST /books/{bookId}/ledger.
type CreateEntryRequest struct {
	Memo         string                   `json:"memo"`
	Timestamp    string                   `json:"timestamp"`
	Approved     *bool                    `json:"approved"`
	Transactions []CreateTransactionInput `json:"transactions" binding:"required"`
}

// CommitResponse acknowledges a committed entry or a void.
type CommitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// VoidEntryRequest is the body of the void operation.
type VoidEntryRequest struct {
	Reason string `json:"reason"`
}

// TransactionResponse is the public projection of a transaction, decimal
// fields coerced to plain numbers.
type TransactionResponse struct {
	ID           string    `json:"id"`
	EntryID      string    `json:"journalEntryId"`
	Account      string    `json:"account"`
	Credit       float64   `json:"credit"`
	Debit        float64   `json:"debit"`
	Currency     string    `json:"currency"`
	ExchangeRate float64   `json:"exchange_rate"`
	Timestamp    time.Time `json:"timestamp"`
	Voided       bool      `json:"voided"`
	VoidReason   string    `json:"voidReason"`
	Approved     bool      `json:"approved"`
}

// EntryResponse is the public projection of a journal entry with its
// transactions.
type EntryResponse struct {
	ID         string                `json:"id"`
	BookID     string                `json:"bookId"`
	Memo       string                `json:"memo"`
	Timestamp  time.Time             `json:"timestamp"`
	Voided     bool                  `json:"voided"`
	VoidReason string                `json:"voidReason"`
	Approved   bool                  `json:"approved"`
	OriginalID *string               `json:"originalId,omitempty"`
	Txns       []TransactionResponse `json:"transactions"`
}

// LedgerResponse is the body of GET /books/{bookId}/ledger.
type LedgerResponse struct {
	Book      string          `json:"book"`
	StartDate *time.Time      `json:"startDate,omitempty"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
	Count     int             `json:"count"`
	Entries   []EntryResponse `json:"entries"`
}

// ToTransactionResponse converts a domain.Transaction to its response
// projection.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           txn.TransactionID,
		EntryID:      txn.EntryID,
		Account:      txn.Account,
		Credit:       txn.Credit.InexactFloat64(),
		Debit:        txn.Debit.InexactFloat64(),
		Currency:     txn.Currency,
		ExchangeRate: txn.ExchangeRate.InexactFloat64(),
		Timestamp:    txn.Timestamp,
		Voided:       txn.Voided,
		VoidReason:   txn.VoidReason,
		Approved:     txn.Approved,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry with its transactions.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		ID:         entry.EntryID,
		BookID:     entry.BookID,
		Memo:       entry.Memo,
		Timestamp:  entry.Timestamp,
		Voided:     entry.Voided,
		VoidReason: entry.VoidReason,
		Approved:   entry.Approved,
		OriginalID: entry.OriginalEntryID,
		Txns:       ToTransactionResponses(entry.Transactions),
	}
}

// ToEntryResponses converts a slice of domain.JournalEntry.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
