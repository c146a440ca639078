// Package validate gates ledger-mutating submissions before any network
// call. The checks run against the cached account snapshot, so a pass here
// is advisory: the ledger re-checks everything authoritatively server-side.
package validate

import (
	"github.com/shopspring/decimal"

	"bank-dashboard/internal/models"
)

type Result int

const (
	Valid Result = iota
	InvalidAmount
	SameAccount
	SourceMissing
	SourceInactive
	DestinationMissing
	DestinationInactive
	InsufficientFunds
	AccountMissing
	AccountInactive
)

func (r Result) String() string {
	switch r {
	case Valid:
		return ""
	case InvalidAmount:
		return "amount must be greater than zero"
	case SameAccount:
		return "cannot transfer to the same account"
	case SourceMissing:
		return "source account not found"
	case SourceInactive:
		return "source account is closed"
	case DestinationMissing:
		return "destination account not found"
	case DestinationInactive:
		return "destination account is closed"
	case InsufficientFunds:
		return "insufficient funds"
	case AccountMissing:
		return "account not found"
	case AccountInactive:
		return "account is closed"
	default:
		return "invalid request"
	}
}

func (r Result) OK() bool { return r == Valid }

func findAccount(accounts []models.Account, number string) *models.Account {
	for i := range accounts {
		if accounts[i].AccountNumber == number {
			return &accounts[i]
		}
	}
	return nil
}

// Transfer checks a proposed transfer against the snapshot. The check order
// is fixed because the first failure is what the user sees: amount validity,
// same-account, source existence and status, destination existence and
// status, then funds. The funds check compares against the cached balance
// and is a best-effort gate, not a guarantee.
func Transfer(fromNumber, toNumber string, amount decimal.Decimal, accounts []models.Account) Result {
	if !amount.IsPositive() {
		return InvalidAmount
	}
	if fromNumber == toNumber {
		return SameAccount
	}

	from := findAccount(accounts, fromNumber)
	if from == nil {
		return SourceMissing
	}
	if !from.IsActive {
		return SourceInactive
	}

	to := findAccount(accounts, toNumber)
	if to == nil {
		return DestinationMissing
	}
	if !to.IsActive {
		return DestinationInactive
	}

	if amount.GreaterThan(from.Balance) {
		return InsufficientFunds
	}
	return Valid
}

// Deposit gates a deposit submission on the cached account state.
func Deposit(account *models.Account, amount decimal.Decimal) Result {
	if !amount.IsPositive() {
		return InvalidAmount
	}
	if account == nil {
		return AccountMissing
	}
	if !account.IsActive {
		return AccountInactive
	}
	return Valid
}

// Withdraw gates a withdrawal; the funds check is advisory like Transfer's.
func Withdraw(account *models.Account, amount decimal.Decimal) Result {
	if !amount.IsPositive() {
		return InvalidAmount
	}
	if account == nil {
		return AccountMissing
	}
	if !account.IsActive {
		return AccountInactive
	}
	if amount.GreaterThan(account.Balance) {
		return InsufficientFunds
	}
	return Valid
}

// Close gates closing an account; double-close is rejected locally.
func Close(account *models.Account) Result {
	if account == nil {
		return AccountMissing
	}
	if !account.IsActive {
		return AccountInactive
	}
	return Valid
}
