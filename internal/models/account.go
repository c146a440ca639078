package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMalformedPayload = errors.New("malformed ledger payload")

// Account is a read-only snapshot of ledger state. The balance is whatever
// the ledger last reported; it is never recomputed on this side.
type Account struct {
	AccountNumber    string          `json:"account_number"`
	HolderName       string          `json:"account_holder"`
	Balance          decimal.Decimal `json:"balance"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at,omitempty"`
	TransactionCount int             `json:"transaction_count,omitempty"`
}

// Validate rejects payloads that would poison downstream views. Called at the
// ledger boundary so nothing past it sees a half-formed account.
func (a *Account) Validate() error {
	if a.AccountNumber == "" {
		return fmt.Errorf("%w: account without account_number", ErrMalformedPayload)
	}
	if a.HolderName == "" {
		return fmt.Errorf("%w: account %s without holder name", ErrMalformedPayload, a.AccountNumber)
	}
	if a.CreatedAt.IsZero() {
		return fmt.Errorf("%w: account %s without created_at", ErrMalformedPayload, a.AccountNumber)
	}
	return nil
}

type CreateAccountRequest struct {
	HolderName     string          `json:"account_holder"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type MutationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type TransferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
}

// TransferResult carries both updated snapshots from an atomic transfer.
type TransferResult struct {
	FromAccount Account `json:"from_account"`
	ToAccount   Account `json:"to_account"`
}

type AccountListResponse struct {
	Accounts    []Account `json:"accounts"`
	Total       int       `json:"total"`
	ActiveCount int       `json:"active_count"`
	ClosedCount int       `json:"closed_count"`
}
