package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ale-project/ale_backend/internal/apperrors"
)

// EntryBuilder accumulates the pending transactions of an uncommitted
// journal entry. Debit and Credit are chainable so multi-leg entries can
// be composed fluently; the first validation failure is remembered and
// surfaced when the entry is built, which keeps the chain uncluttered.
type EntryBuilder struct {
	entry   JournalEntry
	pending []Transaction
	err     error
}

// NewJournalEntry starts a pending, unpersisted entry against the given
// book. A zero timestamp defaults to the current time. The book's quote
// currency is copied onto the entry and used as the default transaction
// currency.
func NewJournalEntry(book Book, memo string, timestamp time.Time) *EntryBuilder {
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	return &EntryBuilder{
		entry: JournalEntry{
			EntryID:       uuid.NewString(),
			BookID:        book.BookID,
			Memo:          memo,
			Timestamp:     timestamp,
			QuoteCurrency: book.QuoteCurrency,
			Approved:      true,
		},
	}
}

// Debit appends a debit leg. An empty currency defaults to the book's
// quote currency; a zero rate defaults to 1.
func (b *EntryBuilder) Debit(account string, amount decimal.Decimal, currency string, exchangeRate decimal.Decimal) *EntryBuilder {
	return b.addTransaction(account, amount, false, currency, exchangeRate)
}

// Credit appends a credit leg.
func (b *EntryBuilder) Credit(account string, amount decimal.Decimal, currency string, exchangeRate decimal.Decimal) *EntryBuilder {
	return b.addTransaction(account, amount, true, currency, exchangeRate)
}

// SetApproved marks the entry approved or pending-approval. The flag is
// propagated onto every transaction when the entry is built.
func (b *EntryBuilder) SetApproved(approved bool) *EntryBuilder {
	b.entry.Approved = approved
	return b
}

func (b *EntryBuilder) addTransaction(account string, amount decimal.Decimal, isCredit bool, currency string, exchangeRate decimal.Decimal) *EntryBuilder {
	path, err := ParseAccountPath(account)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	if currency == "" {
		currency = b.entry.QuoteCurrency
	}
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}
	txn := Transaction{
		TransactionID: uuid.NewString(),
		EntryID:       b.entry.EntryID,
		BookID:        b.entry.BookID,
		Account:       path,
		Currency:      currency,
		ExchangeRate:  exchangeRate,
		Timestamp:     b.entry.Timestamp,
	}
	if isCredit {
		txn.Credit = amount
	} else {
		txn.Debit = amount
	}
	b.pending = append(b.pending, txn)
	return b
}

// Total is the signed sum of all pending legs in quote-currency terms.
func (b *EntryBuilder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, txn := range b.pending {
		total = total.Add(txn.SignedAmount())
	}
	return total
}

// Empty reports whether no legs have been added.
func (b *EntryBuilder) Empty() bool {
	return len(b.pending) == 0
}

// Err returns the first validation error recorded while composing legs.
// A leg rejected here was never appended, so Err must be consulted even
// when the builder looks empty.
func (b *EntryBuilder) Err() error {
	return b.err
}

// Entry returns the pending entry header as composed so far.
func (b *EntryBuilder) Entry() JournalEntry {
	return b.entry
}

// Build validates the zero-sum invariant and returns the entry together
// with its transactions, approved flag propagated. It does not persist
// anything. Any validation error recorded while composing legs is
// returned here.
func (b *EntryBuilder) Build() (JournalEntry, []Transaction, error) {
	if b.err != nil {
		return JournalEntry{}, nil, b.err
	}
	total := b.Total()
	if !IsNearZero(total) {
		return JournalEntry{}, nil, apperrors.Newf(apperrors.EntryNotBalanced,
			"invalid journal entry: total is %s, not zero", total.String())
	}
	transactions := make([]Transaction, len(b.pending))
	copy(transactions, b.pending)
	for i := range transactions {
		transactions[i].Approved = b.entry.Approved
	}
	return b.entry, transactions, nil
}
