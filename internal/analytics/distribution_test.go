package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bank-dashboard/internal/models"
)

func account(t *testing.T, number, holder, balance string, active bool) models.Account {
	t.Helper()
	return models.Account{
		AccountNumber: number,
		HolderName:    holder,
		Balance:       amount(t, balance),
		IsActive:      active,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTopBalancesSelectsAndRanks(t *testing.T) {
	accounts := []models.Account{
		account(t, "A1", "Alice", "100.00", true),
		account(t, "A2", "Bob", "300.00", true),
		account(t, "A3", "Carol", "50.00", false), // closed, excluded
		account(t, "A4", "Dave", "600.00", true),
	}

	shares := TopBalances(accounts, 5)
	if len(shares) != 3 {
		t.Fatalf("len=%d want=3", len(shares))
	}
	if shares[0].Name != "Dave" || shares[1].Name != "Bob" || shares[2].Name != "Alice" {
		t.Fatalf("order=%v", []string{shares[0].Name, shares[1].Name, shares[2].Name})
	}
	// 600/1000, 300/1000, 100/1000 of the selected subset.
	if shares[0].Percentage != "60.0" || shares[1].Percentage != "30.0" || shares[2].Percentage != "10.0" {
		t.Fatalf("percentages=%v", []string{shares[0].Percentage, shares[1].Percentage, shares[2].Percentage})
	}
}

func TestTopBalancesTakesOnlyTopN(t *testing.T) {
	var accounts []models.Account
	for i := 0; i < 8; i++ {
		accounts = append(accounts, account(t, "A", "H", "10.00", true))
	}
	if got := len(TopBalances(accounts, 5)); got != 5 {
		t.Fatalf("len=%d want=5", got)
	}
}

func TestTopBalancesPercentagesSumToHundred(t *testing.T) {
	accounts := []models.Account{
		account(t, "A1", "Alice", "333.33", true),
		account(t, "A2", "Bob", "333.33", true),
		account(t, "A3", "Carol", "333.34", true),
	}

	total := decimal.Zero
	for _, share := range TopBalances(accounts, 5) {
		p, err := decimal.NewFromString(share.Percentage)
		if err != nil {
			t.Fatal(err)
		}
		total = total.Add(p)
	}
	// Tolerate one decimal place of rounding per rendered share.
	diff := total.Sub(decimal.NewFromInt(100)).Abs()
	if diff.GreaterThan(amount(t, "0.3")) {
		t.Fatalf("percentages sum to %s", total)
	}
}

func TestTopBalancesEmptyWhenNoActive(t *testing.T) {
	accounts := []models.Account{
		account(t, "A1", "Alice", "100.00", false),
	}
	if shares := TopBalances(accounts, 5); len(shares) != 0 {
		t.Fatalf("want empty, got %+v", shares)
	}
	if shares := TopBalances(nil, 5); len(shares) != 0 {
		t.Fatalf("want empty for nil input, got %+v", shares)
	}
}

func TestTopBalancesTiesKeepInputOrder(t *testing.T) {
	accounts := []models.Account{
		account(t, "A1", "First", "100.00", true),
		account(t, "A2", "Second", "100.00", true),
		account(t, "A3", "Third", "100.00", true),
	}
	shares := TopBalances(accounts, 5)
	if shares[0].Name != "First" || shares[1].Name != "Second" || shares[2].Name != "Third" {
		t.Fatalf("tie order not stable: %+v", shares)
	}
}

func TestTopBalancesAllZeroBalances(t *testing.T) {
	accounts := []models.Account{
		account(t, "A1", "Alice", "0.00", true),
		account(t, "A2", "Bob", "0.00", true),
	}
	shares := TopBalances(accounts, 5)
	if len(shares) != 2 {
		t.Fatalf("len=%d want=2", len(shares))
	}
	for _, share := range shares {
		if share.Percentage != "0.0" {
			t.Fatalf("zero-total percentage=%q want=0.0", share.Percentage)
		}
	}
}
