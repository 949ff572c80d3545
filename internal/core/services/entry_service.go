package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"
	portsrepo "github.com/ale-project/ale_backend/internal/core/ports/repositories"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/middleware"
)

// entryService owns the journal-entry commit and void protocols.
type entryService struct {
	entryRepo portsrepo.EntryRepository
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepository) portssvc.EntrySvcFacade {
	return &entryService{entryRepo: entryRepo}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// NewEntry starts a pending entry bound to the book. Nothing is persisted
// until CommitEntry.
func (s *entryService) NewEntry(book *domain.Book, memo string, timestamp time.Time) *domain.EntryBuilder {
	return domain.NewJournalEntry(*book, memo, timestamp)
}

// CommitEntry validates the zero-sum invariant and persists the entry
// with all its transactions as one atomic unit.
//
// Committing an entry with zero transactions succeeds trivially without
// persisting anything, mirroring long-standing behavior; callers should
// not rely on it.
func (s *entryService) CommitEntry(ctx context.Context, builder *domain.EntryBuilder) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// A leg that failed validation was never appended, so the stashed
	// error must win over the empty-commit shortcut.
	if err := builder.Err(); err != nil {
		return nil, err
	}
	if builder.Empty() {
		pending := builder.Entry()
		return &pending, nil
	}

	entry, transactions, err := builder.Build()
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, transactions); err != nil {
		logger.Error("Failed to save journal entry", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return nil, apperrors.Wrap(apperrors.DatabaseUpdateError, err, "failed to save journal entry")
	}

	logger.Info("Journal entry committed",
		slog.String("entry_id", entry.EntryID),
		slog.String("book_id", entry.BookID),
		slog.Int("transactions", len(transactions)))
	entry.Transactions = transactions
	return &entry, nil
}

// GetEntry returns the entry with its transactions populated. A missing
// entry fails with TransactionIDNotFound.
func (s *entryService) GetEntry(ctx context.Context, book *domain.Book, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.TransactionIDNotFound, "journal entry not found with ID %s", entryID)
		}
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "journal entry query failed")
	}
	if entry.BookID != book.BookID {
		return nil, apperrors.Newf(apperrors.TransactionIDNotFound, "journal entry not found with ID %s", entryID)
	}
	transactions, err := s.entryRepo.FindTransactionsByEntryID(ctx, entryID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.DatabaseQueryError, err, "transaction query failed")
	}
	entry.Transactions = transactions
	return entry, nil
}

// VoidEntry marks the entry and all its transactions void, then
// synthesizes and commits an equal-and-opposite reversal entry, all
// within one database transaction. Partial application (entry voided but
// transactions not, or void without reversal) can never survive a
// failure.
func (s *entryService) VoidEntry(ctx context.Context, book *domain.Book, entryID string, reason string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var reversal *domain.JournalEntry
	err := s.entryRepo.WithTx(ctx, func(txRepo portsrepo.EntryRepository) error {
		original, err := txRepo.FindEntryByID(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.Newf(apperrors.TransactionIDNotFound, "journal entry not found with ID %s", entryID)
			}
			return apperrors.Wrap(apperrors.DatabaseQueryError, err, "journal entry query failed")
		}
		if original.BookID != book.BookID {
			return apperrors.Newf(apperrors.TransactionIDNotFound, "journal entry not found with ID %s", entryID)
		}
		if original.Voided {
			return apperrors.New(apperrors.UnknownError, "journal entry already voided")
		}

		if err := txRepo.MarkEntryVoided(ctx, entryID, reason); err != nil {
			return apperrors.Wrap(apperrors.DatabaseUpdateError, err, "failed to void journal entry")
		}
		if err := txRepo.MarkTransactionsVoided(ctx, entryID, reason); err != nil {
			return apperrors.Wrap(apperrors.DatabaseUpdateError, err, "failed to void transactions")
		}

		originalTxns, err := txRepo.FindTransactionsByEntryID(ctx, entryID)
		if err != nil {
			return apperrors.Wrap(apperrors.DatabaseQueryError, err, "transaction query failed")
		}

		// Equal and opposite: each credit leg becomes a debit of the same
		// amount, currency and rate, and vice versa. The reversal's total
		// is therefore the negation of the original's, so it balances too;
		// Build re-checks anyway.
		builder := domain.NewJournalEntry(*book, original.Memo+domain.ReversedMemoSuffix, time.Now().UTC())
		for _, txn := range originalTxns {
			if !txn.Credit.IsZero() {
				builder.Debit(txn.Account, txn.Credit, txn.Currency, txn.ExchangeRate)
			}
			if !txn.Debit.IsZero() {
				builder.Credit(txn.Account, txn.Debit, txn.Currency, txn.ExchangeRate)
			}
		}

		entry, transactions, err := builder.Build()
		if err != nil {
			return err
		}
		entry.OriginalEntryID = &original.EntryID

		if err := txRepo.SaveEntry(ctx, entry, transactions); err != nil {
			return apperrors.Wrap(apperrors.DatabaseUpdateError, err, "failed to save reversal entry")
		}
		entry.Transactions = transactions
		reversal = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Journal entry voided",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("book_id", book.BookID))
	return reversal, nil
}
