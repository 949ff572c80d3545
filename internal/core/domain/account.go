package domain

import "time"

// Account is registered metadata for an account path, scoped to a book.
// Registration is optional: transactions may reference unregistered paths
// freely. AccountCode and AccountName are unique within a book.
type Account struct {
	AccountID      string    `json:"id"`
	BookID         string    `json:"bookId"`
	AccountCode    int       `json:"accountCode"`
	AccountName    string    `json:"accountName"`
	ToIncrease     EntrySide `json:"toIncrease"` // Which side increases this account
	Classification string    `json:"accountClassification"`
	AccountType    string    `json:"accountType"`
	SubType        string    `json:"subAccountType"`
	Memo           string    `json:"memo"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
