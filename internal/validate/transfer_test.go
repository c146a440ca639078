package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bank-dashboard/internal/models"
)

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return d
}

func snapshot(t *testing.T) []models.Account {
	t.Helper()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Account{
		{AccountNumber: "SRC", HolderName: "Alice", Balance: amount(t, "100.00"), IsActive: true, CreatedAt: created},
		{AccountNumber: "DST", HolderName: "Bob", Balance: amount(t, "50.00"), IsActive: true, CreatedAt: created},
		{AccountNumber: "CLOSED", HolderName: "Carol", Balance: amount(t, "0.00"), IsActive: false, CreatedAt: created},
	}
}

func TestTransferChecksInOrder(t *testing.T) {
	accounts := snapshot(t)

	cases := []struct {
		name   string
		from   string
		to     string
		amount string
		want   Result
	}{
		{"negative amount", "SRC", "DST", "-5", InvalidAmount},
		{"zero amount", "SRC", "DST", "0", InvalidAmount},
		// Amount is checked before everything: a bad amount on a self
		// transfer reports InvalidAmount, not SameAccount.
		{"bad amount beats same account", "SRC", "SRC", "0", InvalidAmount},
		{"same account even with funds", "SRC", "SRC", "10.00", SameAccount},
		{"unknown source", "NOPE", "DST", "10.00", SourceMissing},
		{"closed source", "CLOSED", "DST", "10.00", SourceInactive},
		{"unknown destination", "SRC", "NOPE", "10.00", DestinationMissing},
		{"closed destination", "SRC", "CLOSED", "10.00", DestinationInactive},
		{"one cent over", "SRC", "DST", "100.01", InsufficientFunds},
		{"exact balance", "SRC", "DST", "100.00", Valid},
		{"normal", "SRC", "DST", "25.00", Valid},
	}

	for _, tc := range cases {
		if got := Transfer(tc.from, tc.to, amount(t, tc.amount), accounts); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestTransferClosedSourceBeatsFundsCheck(t *testing.T) {
	// Existence and status come before the funds check even when funds
	// would also fail.
	accounts := snapshot(t)
	if got := Transfer("CLOSED", "DST", amount(t, "999.00"), accounts); got != SourceInactive {
		t.Fatalf("got %v want SourceInactive", got)
	}
}

func TestDepositGate(t *testing.T) {
	accounts := snapshot(t)
	open := &accounts[0]
	closed := &accounts[2]

	if got := Deposit(open, amount(t, "10.00")); got != Valid {
		t.Fatalf("open deposit: %v", got)
	}
	if got := Deposit(open, amount(t, "0")); got != InvalidAmount {
		t.Fatalf("zero deposit: %v", got)
	}
	if got := Deposit(closed, amount(t, "10.00")); got != AccountInactive {
		t.Fatalf("closed deposit: %v", got)
	}
	if got := Deposit(nil, amount(t, "10.00")); got != AccountMissing {
		t.Fatalf("missing deposit: %v", got)
	}
}

func TestWithdrawGate(t *testing.T) {
	accounts := snapshot(t)
	open := &accounts[0] // 100.00

	if got := Withdraw(open, amount(t, "100.00")); got != Valid {
		t.Fatalf("exact withdraw: %v", got)
	}
	if got := Withdraw(open, amount(t, "100.01")); got != InsufficientFunds {
		t.Fatalf("one cent over: %v", got)
	}
	if got := Withdraw(&accounts[2], amount(t, "1.00")); got != AccountInactive {
		t.Fatalf("closed withdraw: %v", got)
	}
}

func TestCloseGate(t *testing.T) {
	accounts := snapshot(t)
	if got := Close(&accounts[0]); got != Valid {
		t.Fatalf("close open: %v", got)
	}
	if got := Close(&accounts[2]); got != AccountInactive {
		t.Fatalf("double close: %v", got)
	}
	if got := Close(nil); got != AccountMissing {
		t.Fatalf("close missing: %v", got)
	}
}

func TestResultMessages(t *testing.T) {
	if Valid.String() != "" || !Valid.OK() {
		t.Fatal("Valid should be empty and OK")
	}
	for _, r := range []Result{InvalidAmount, SameAccount, SourceMissing, SourceInactive, DestinationMissing, DestinationInactive, InsufficientFunds, AccountMissing, AccountInactive} {
		if r.OK() || r.String() == "" {
			t.Fatalf("%v should carry a reason", r)
		}
	}
}
