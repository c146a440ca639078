// Package services assembles per-view snapshots from the remote ledger and
// gates mutating calls. Nothing here holds ledger state between requests:
// every view is fetched wholesale, composed, and discarded.
package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"bank-dashboard/internal/models"
	"bank-dashboard/internal/validate"
)

// Ledger is the remote surface the services depend on. Implemented by
// ledger.Client in production and by an in-memory fake in tests.
type Ledger interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, accountNumber string) (*models.Account, error)
	CreateAccount(ctx context.Context, holderName string, initialBalance decimal.Decimal) (*models.Account, error)
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error)
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error)
	Close(ctx context.Context, accountNumber string) (*models.Account, error)
	AccountTransactions(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	Transactions(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (*models.TransferResult, error)
	Summary(ctx context.Context) (*models.BankSummary, error)
}

var (
	// ErrStaleView marks a fetch that resolved after its initiating view was
	// superseded. The result is discarded, never merged into a live view.
	ErrStaleView = errors.New("view superseded before fetch resolved")

	// ErrBusy rejects a second mutating call for an account while one is
	// already in flight (double-submission guard).
	ErrBusy = errors.New("a request for this account is already in flight")

	ErrHolderRequired = errors.New("account holder name is required")

	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")
)

// ValidationError is a local pre-submission rejection. It never reaches the
// ledger: the request is blocked before any network call.
type ValidationError struct {
	Reason validate.Result
}

func (e *ValidationError) Error() string {
	return e.Reason.String()
}
