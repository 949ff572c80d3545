package domain

import "time"

// TransactionFilter narrows ledger, balance, transaction and
// mark-to-market queries. The zero value matches everything in a book.
// Account entries match the path itself and all descendants (prefix
// match). Pages are 1-indexed.
type TransactionFilter struct {
	Accounts    []string
	StartDate   *time.Time
	EndDate     *time.Time
	Memo        string
	EntryID     string
	PerPage     int
	Page        int
	NewestFirst bool
}

// Offset returns the row offset implied by PerPage/Page.
func (f TransactionFilter) Offset() int {
	if f.PerPage <= 0 {
		return 0
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PerPage
}
