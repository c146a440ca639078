package models

import "github.com/shopspring/decimal"

// BankSummary is a stateless scalar snapshot, recomputed on every fetch.
// TotalDeposits is the sum of active balances, as defined by the ledger.
type BankSummary struct {
	TotalAccounts     int             `json:"total_accounts"`
	ActiveAccounts    int             `json:"active_accounts"`
	TotalDeposits     decimal.Decimal `json:"total_deposits"`
	TotalTransactions int             `json:"total_transactions"`
}
