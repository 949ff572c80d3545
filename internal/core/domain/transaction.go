package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates which side of the ledger a posting increases.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Transaction is one credit or debit leg against an account path, within
// a journal entry. Exactly one of Credit/Debit is normally nonzero: the
// caller nets multiple inputs into a single signed amount before the leg
// is built. Becomes durable only when its parent entry commits.
type Transaction struct {
	TransactionID string          `json:"id"`
	EntryID       string          `json:"journalEntryId"`
	BookID        string          `json:"bookId"` // Denormalized to avoid joins on book-wide queries
	Account       string          `json:"account"`
	Credit        decimal.Decimal `json:"credit"`
	Debit         decimal.Decimal `json:"debit"`
	Currency      string          `json:"currency"`
	// ExchangeRate is units of the book's quote currency per unit of this
	// transaction's currency. Defaults to 1.
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Timestamp    time.Time       `json:"timestamp"`
	Voided       bool            `json:"voided"`
	VoidReason   string          `json:"voidReason"`
	Approved     bool            `json:"approved"`
}

// SignedAmount is the transaction's contribution to the entry total in
// quote-currency terms: (credit - debit) * exchangeRate.
func (t Transaction) SignedAmount() decimal.Decimal {
	return t.Credit.Sub(t.Debit).Mul(t.ExchangeRate)
}
