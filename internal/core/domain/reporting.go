package domain

import "github.com/shopspring/decimal"

// BalanceResult is the aggregate over the transactions matched by a
// balance query. Balance = CreditTotal - DebitTotal. When no rows match,
// all fields are zero and Currency is empty.
type BalanceResult struct {
	CreditTotal     decimal.Decimal
	DebitTotal      decimal.Decimal
	Balance         decimal.Decimal
	Currency        string
	NumTransactions int
}

// AccountBalance is one (account, currency) group-by row with its net
// credit - debit balance, as used by mark-to-market.
type AccountBalance struct {
	Account  string
	Currency string
	Balance  decimal.Decimal
}

// TrialBalanceRow pairs a registered account with its balance.
type TrialBalanceRow struct {
	AccountName string
	ToIncrease  EntrySide
	Balance     BalanceResult
}

// TrialBalance is the full trial balance report for a book.
type TrialBalance struct {
	IsBalanced  bool
	CreditTotal decimal.Decimal
	DebitTotal  decimal.Decimal
	Rows        []TrialBalanceRow
}

// MarkToMarketResult revalues each account at supplied current rates and
// totals the unrealized profit across them, in quote-currency terms.
type MarkToMarketResult struct {
	Accounts         map[string]decimal.Decimal
	UnrealizedProfit decimal.Decimal
}
