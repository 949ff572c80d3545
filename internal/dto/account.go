package dto

import (
	"time"

	"github.com/ale-project/ale_backend/internal/core/domain"
)

// CreateAccountRequest is the body of POST /books/{bookId}/accounts.
type CreateAccountRequest struct {
	AccountCode    int    `json:"accountCode"`
	AccountName    string `json:"accountName"`
	ToIncrease     string `json:"toIncrease"`
	Classification string `json:"accountClassification"`
	AccountType    string `json:"accountType"`
	SubType        string `json:"subAccountType"`
	Memo           string `json:"memo"`
}

// AccountResponse is the public projection of a registered account.
type AccountResponse struct {
	ID             string    `json:"id"`
	BookID         string    `json:"bookId"`
	AccountCode    int       `json:"accountCode"`
	AccountName    string    `json:"accountName"`
	ToIncrease     string    `json:"toIncrease"`
	Classification string    `json:"accountClassification"`
	AccountType    string    `json:"accountType"`
	SubType        string    `json:"subAccountType"`
	Memo           string    `json:"memo"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateAccountResponse wraps a freshly registered account.
type CreateAccountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	AccountResponse
}

// ToAccountResponse converts a domain.Account to its response projection.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             account.AccountID,
		BookID:         account.BookID,
		AccountCode:    account.AccountCode,
		AccountName:    account.AccountName,
		ToIncrease:     string(account.ToIncrease),
		Classification: account.Classification,
		AccountType:    account.AccountType,
		SubType:        account.SubType,
		Memo:           account.Memo,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
