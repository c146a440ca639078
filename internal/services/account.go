package services

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"bank-dashboard/internal/filter"
	"bank-dashboard/internal/ledger"
	"bank-dashboard/internal/models"
	"bank-dashboard/internal/utils"
	"bank-dashboard/internal/validate"
	"bank-dashboard/internal/worker"
)

// AccountService wraps every account-facing ledger operation. Mutations are
// gated by the local validator first, limited to one in-flight call per
// account, and followed by a wholesale re-fetch — the local snapshot is never
// patched in place.
type AccountService struct {
	ledger Ledger
	pool   *worker.Pool

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewAccountService(ledger Ledger, pool *worker.Pool) *AccountService {
	return &AccountService{
		ledger:   ledger,
		pool:     pool,
		inFlight: make(map[string]struct{}),
	}
}

// acquire reserves the given accounts for a single mutating call. All-or-
// nothing: a transfer holding its source must not block forever on its
// destination.
func (s *AccountService) acquire(accountNumbers ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, number := range accountNumbers {
		if _, busy := s.inFlight[number]; busy {
			utils.LogWarning("AccountService", "rejected concurrent request for account %s", number)
			return ErrBusy
		}
	}
	for _, number := range accountNumbers {
		s.inFlight[number] = struct{}{}
	}
	return nil
}

func (s *AccountService) release(accountNumbers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, number := range accountNumbers {
		delete(s.inFlight, number)
	}
}

// List fetches the account list and narrows it for display.
func (s *AccountService) List(ctx context.Context, status filter.Status, query string) ([]models.Account, error) {
	accounts, err := s.ledger.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(accounts, status, query), nil
}

// Get fetches an account and its history in parallel. Transactions come back
// oldest-first so the balance narrative reads chronologically.
func (s *AccountService) Get(ctx context.Context, accountNumber string) (*models.Account, []models.Transaction, error) {
	var (
		account      *models.Account
		transactions []models.Transaction
	)

	err := joinFetches(ctx, s.pool, []fetchTask{
		{id: "account-" + accountNumber, run: func() error {
			var err error
			account, err = s.ledger.GetAccount(ctx, accountNumber)
			return err
		}},
		{id: "history-" + accountNumber, run: func() error {
			var err error
			transactions, err = s.ledger.AccountTransactions(ctx, accountNumber)
			return err
		}},
	})
	if err != nil {
		return nil, nil, err
	}

	models.SortByTimestamp(transactions)
	return account, transactions, nil
}

// Feed returns the global transaction feed, newest first, optionally
// narrowed to one account.
func (s *AccountService) Feed(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	transactions, err := s.ledger.Transactions(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	models.SortByTimestampDesc(transactions)
	return transactions, nil
}

func (s *AccountService) Create(ctx context.Context, holderName string, initialBalance decimal.Decimal) (*models.Account, error) {
	if strings.TrimSpace(holderName) == "" {
		return nil, ErrHolderRequired
	}
	if initialBalance.IsNegative() {
		return nil, ErrNegativeInitialBalance
	}
	account, err := s.ledger.CreateAccount(ctx, holderName, initialBalance)
	if err != nil {
		return nil, err
	}
	utils.LogSuccess("AccountService", "account %s created for %s", account.AccountNumber, holderName)
	return account, nil
}

// snapshotAccount refreshes the cached view of one account before a gate
// check. A 404 is reported as a validation failure, not a transport error.
func (s *AccountService) snapshotAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	account, err := s.ledger.GetAccount(ctx, accountNumber)
	if err != nil {
		if ledger.IsNotFound(err) {
			return nil, &ValidationError{Reason: validate.AccountMissing}
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error) {
	if err := s.acquire(accountNumber); err != nil {
		return nil, err
	}
	defer s.release(accountNumber)

	account, err := s.snapshotAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if result := validate.Deposit(account, amount); !result.OK() {
		return nil, &ValidationError{Reason: result}
	}

	if _, err := s.ledger.Deposit(ctx, accountNumber, amount, description); err != nil {
		return nil, err
	}

	utils.LogSuccess("AccountService", "deposited %s into %s", amount.StringFixed(2), accountNumber)
	return s.ledger.GetAccount(ctx, accountNumber)
}

func (s *AccountService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error) {
	if err := s.acquire(accountNumber); err != nil {
		return nil, err
	}
	defer s.release(accountNumber)

	account, err := s.snapshotAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if result := validate.Withdraw(account, amount); !result.OK() {
		return nil, &ValidationError{Reason: result}
	}

	if _, err := s.ledger.Withdraw(ctx, accountNumber, amount, description); err != nil {
		return nil, err
	}

	utils.LogSuccess("AccountService", "withdrew %s from %s", amount.StringFixed(2), accountNumber)
	return s.ledger.GetAccount(ctx, accountNumber)
}

func (s *AccountService) Close(ctx context.Context, accountNumber string) (*models.Account, error) {
	if err := s.acquire(accountNumber); err != nil {
		return nil, err
	}
	defer s.release(accountNumber)

	account, err := s.snapshotAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if result := validate.Close(account); !result.OK() {
		return nil, &ValidationError{Reason: result}
	}

	if _, err := s.ledger.Close(ctx, accountNumber); err != nil {
		return nil, err
	}

	utils.LogSuccess("AccountService", "account %s closed", accountNumber)
	return s.ledger.GetAccount(ctx, accountNumber)
}

// Transfer gates the submission against a fresh full snapshot, then hands the
// atomic move to the ledger and re-fetches both sides.
func (s *AccountService) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (*models.TransferResult, error) {
	if err := s.acquire(fromAccount, toAccount); err != nil {
		return nil, err
	}
	defer s.release(fromAccount, toAccount)

	snapshot, err := s.ledger.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if result := validate.Transfer(fromAccount, toAccount, amount, snapshot); !result.OK() {
		return nil, &ValidationError{Reason: result}
	}

	if _, err := s.ledger.Transfer(ctx, fromAccount, toAccount, amount); err != nil {
		return nil, err
	}

	from, err := s.ledger.GetAccount(ctx, fromAccount)
	if err != nil {
		return nil, err
	}
	to, err := s.ledger.GetAccount(ctx, toAccount)
	if err != nil {
		return nil, err
	}

	utils.LogSuccess("AccountService", "transferred %s from %s to %s", amount.StringFixed(2), fromAccount, toAccount)
	return &models.TransferResult{FromAccount: *from, ToAccount: *to}, nil
}
