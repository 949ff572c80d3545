package domain

import "time"

// ReversedMemoSuffix is appended to the memo of the reversing entry
// synthesized when an entry is voided.
const ReversedMemoSuffix = " [REVERSED]"

// JournalEntry is an atomic, balanced group of transactions sharing one
// memo and timestamp. Once committed it is immutable except for the
// voided/voidReason/approved transitions.
type JournalEntry struct {
	EntryID       string    `json:"id"`
	BookID        string    `json:"bookId"`
	Memo          string    `json:"memo"`
	Timestamp     time.Time `json:"timestamp"`
	QuoteCurrency string    `json:"quoteCurrency"` // Copied from the book at build time
	Voided        bool      `json:"voided"`
	VoidReason    string    `json:"voidReason"`
	Approved      bool      `json:"approved"`
	// OriginalEntryID back-references the entry this one reverses. A plain
	// id, not an object reference, so entries never form an ownership cycle.
	OriginalEntryID *string `json:"originalId,omitempty"`

	Transactions []Transaction `json:"transactions,omitempty"`
}
