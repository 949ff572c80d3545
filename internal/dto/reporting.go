package dto

import (
	"github.com/ale-project/ale_backend/internal/core/domain"
)

// BalanceResponse is the body of GET /books/{bookId}/balance.
type BalanceResponse struct {
	CreditTotal     float64 `json:"creditTotal"`
	DebitTotal      float64 `json:"debitTotal"`
	Balance         float64 `json:"balance"`
	Currency        string  `json:"currency,omitempty"`
	NumTransactions int     `json:"numTransactions"`
}

// TransactionsResponse is the body of GET /books/{bookId}/transactions.
type TransactionsResponse struct {
	Book         string                `json:"book"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TrialBalanceRowResponse is one line of a trial balance report.
type TrialBalanceRowResponse struct {
	AccountName string          `json:"accountName"`
	ToIncrease  string          `json:"toIncrease"`
	Balance     BalanceResponse `json:"balance"`
}

// TrialBalanceResponse is the body of GET /books/{bookId}/tb.
type TrialBalanceResponse struct {
	IsBalanced  bool                      `json:"isBalanced"`
	CreditTotal float64                   `json:"creditTotal"`
	DebitTotal  float64                   `json:"debitTotal"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
}

// MarkToMarketRequest carries exchange rates keyed by currency code.
type MarkToMarketRequest struct {
	ExchangeRates map[string]float64 `json:"exchangeRates" binding:"required"`
	Accounts      []string           `json:"accounts"`
}

// ToBalanceResponse converts a domain.BalanceResult.
func ToBalanceResponse(result *domain.BalanceResult) BalanceResponse {
	return BalanceResponse{
		CreditTotal:     result.CreditTotal.InexactFloat64(),
		DebitTotal:      result.DebitTotal.InexactFloat64(),
		Balance:         result.Balance.InexactFloat64(),
		Currency:        result.Currency,
		NumTransactions: result.NumTransactions,
	}
}

// ToTrialBalanceResponse converts a domain.TrialBalance.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountName: row.AccountName,
			ToIncrease:  string(row.ToIncrease),
			Balance:     ToBalanceResponse(&row.Balance),
		}
	}
	return TrialBalanceResponse{
		IsBalanced:  tb.IsBalanced,
		CreditTotal: tb.CreditTotal.InexactFloat64(),
		DebitTotal:  tb.DebitTotal.InexactFloat64(),
		Rows:        rows,
	}
}

// ToMarkToMarketResponse flattens a domain.MarkToMarketResult into the
// per-account map plus the unrealizedProfit key.
func ToMarkToMarketResponse(result *domain.MarkToMarketResult) map[string]float64 {
	out := make(map[string]float64, len(result.Accounts)+1)
	for account, balance := range result.Accounts {
		out[account] = balance.InexactFloat64()
	}
	out["unrealizedProfit"] = result.UnrealizedProfit.InexactFloat64()
	return out
}
