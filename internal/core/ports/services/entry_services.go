package services

import (
	"context"
	"time"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// EntrySvcFacade owns the journal-entry commit and void protocols.
type EntrySvcFacade interface {
	// NewEntry starts a pending entry bound to the book. Nothing is
	// persisted until CommitEntry.
	NewEntry(book *domain.Book, memo string, timestamp time.Time) *domain.EntryBuilder

	// CommitEntry validates the zero-sum invariant and persists the entry
	// with all its transactions atomically. Committing an entry with no
	// transactions is a silent no-op that returns the unpersisted entry.
	CommitEntry(ctx context.Context, builder *domain.EntryBuilder) (*domain.JournalEntry, error)

	// GetEntry returns the entry with its transactions populated.
	GetEntry(ctx context.Context, book *domain.Book, entryID string) (*domain.JournalEntry, error)

	// VoidEntry marks the entry and its transactions void and commits an
	// equal-and-opposite reversal entry, all within one atomic unit.
	// Returns the reversal entry. Voiding is one-way: an already-void
	// entry cannot be voided again.
	VoidEntry(ctx context.Context, book *domain.Book, entryID string, reason string) (*domain.JournalEntry, error)
}
