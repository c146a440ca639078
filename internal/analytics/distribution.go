package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"bank-dashboard/internal/models"
)

// TopAccounts is how many balances the distribution chart shows.
const TopAccounts = 5

var oneHundred = decimal.NewFromInt(100)

// BalanceShare is one slice of the top-balance distribution. Percentage is
// the share of the selected subset's total, not of the whole bank, rendered
// with one decimal place.
type BalanceShare struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage string          `json:"percentage"`
}

// TopBalances picks the n largest active balances and computes each one's
// share of the selected total. Accounts with equal balances keep their input
// order. No active accounts means an empty result, never a division by zero.
func TopBalances(accounts []models.Account, n int) []BalanceShare {
	active := make([]models.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.IsActive {
			active = append(active, account)
		}
	}
	if len(active) == 0 {
		return nil
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Balance.GreaterThan(active[j].Balance)
	})

	if len(active) > n {
		active = active[:n]
	}

	total := decimal.Zero
	for _, account := range active {
		total = total.Add(account.Balance)
	}

	shares := make([]BalanceShare, 0, len(active))
	for _, account := range active {
		percentage := "0.0"
		if !total.IsZero() {
			percentage = account.Balance.Div(total).Mul(oneHundred).StringFixed(1)
		}
		shares = append(shares, BalanceShare{
			Name:       account.HolderName,
			Value:      account.Balance,
			Percentage: percentage,
		})
	}
	return shares
}
