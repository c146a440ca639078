package analytics

import (
	"github.com/shopspring/decimal"

	"bank-dashboard/internal/models"
)

// Reduce folds the full account and transaction snapshots into bank-wide
// scalars. Order-independent and side-effect free, so the result can be
// recomputed on every view and checked against the ledger's own summary.
func Reduce(accounts []models.Account, transactions []models.Transaction) models.BankSummary {
	summary := models.BankSummary{
		TotalAccounts:     len(accounts),
		TotalTransactions: len(transactions),
		TotalDeposits:     decimal.Zero,
	}
	for _, account := range accounts {
		if account.IsActive {
			summary.ActiveAccounts++
			summary.TotalDeposits = summary.TotalDeposits.Add(account.Balance)
		}
	}
	return summary
}
