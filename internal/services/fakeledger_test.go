package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"bank-dashboard/internal/analytics"
	"bank-dashboard/internal/ledger"
	"bank-dashboard/internal/models"
)

// fakeLedger is an in-memory stand-in for the remote service. It reproduces
// the server's arithmetic (balance bookkeeping, balance_after stamping) so
// scenario tests can check end-to-end consistency, and it counts calls per
// operation so tests can prove a gated request never went out.
type fakeLedger struct {
	mu          sync.Mutex
	accounts    map[string]*models.Account
	order       []string
	records     []fakeRecord
	nextAccount int
	nextTxID    int64
	clock       time.Time
	calls       map[string]int
}

type fakeRecord struct {
	account string
	tx      models.Transaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts: make(map[string]*models.Account),
		clock:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		calls:    make(map[string]int),
	}
}

func (f *fakeLedger) count(op string) {
	f.calls[op]++
}

func (f *fakeLedger) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeLedger) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeLedger) record(account string, kind models.TransactionKind, amount, balanceAfter decimal.Decimal, description string, ts time.Time) {
	f.nextTxID++
	f.records = append(f.records, fakeRecord{
		account: account,
		tx: models.Transaction{
			ID:           f.nextTxID,
			Kind:         kind,
			Amount:       amount,
			BalanceAfter: balanceAfter,
			Description:  description,
			Timestamp:    ts,
		},
	})
}

func reject(message string) error {
	return &ledger.RemoteError{Status: 400, Message: message}
}

func notFound() error {
	return &ledger.RemoteError{Status: 404, Message: "not found"}
}

func (f *fakeLedger) ListAccounts(ctx context.Context) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListAccounts")

	out := make([]models.Account, 0, len(f.order))
	for _, number := range f.order {
		out = append(out, *f.accounts[number])
	}
	return out, nil
}

func (f *fakeLedger) GetAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetAccount")

	account, ok := f.accounts[accountNumber]
	if !ok {
		return nil, notFound()
	}
	cp := *account
	return &cp, nil
}

func (f *fakeLedger) CreateAccount(ctx context.Context, holderName string, initialBalance decimal.Decimal) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateAccount")

	f.nextAccount++
	number := fmt.Sprintf("ACC%03d", f.nextAccount)
	ts := f.tick()
	account := &models.Account{
		AccountNumber: number,
		HolderName:    holderName,
		Balance:       initialBalance,
		IsActive:      true,
		CreatedAt:     ts,
	}
	f.accounts[number] = account
	f.order = append(f.order, number)
	if initialBalance.IsPositive() {
		f.record(number, models.KindInitial, initialBalance, initialBalance, "Initial deposit", ts)
	}
	cp := *account
	return &cp, nil
}

func (f *fakeLedger) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Deposit")

	account, ok := f.accounts[accountNumber]
	if !ok {
		return nil, notFound()
	}
	if !account.IsActive {
		return nil, reject("Account is closed")
	}
	if !amount.IsPositive() {
		return nil, reject("Deposit amount must be positive")
	}
	account.Balance = account.Balance.Add(amount)
	f.record(accountNumber, models.KindDeposit, amount, account.Balance, description, f.tick())
	cp := *account
	return &cp, nil
}

func (f *fakeLedger) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Withdraw")

	account, ok := f.accounts[accountNumber]
	if !ok {
		return nil, notFound()
	}
	if !account.IsActive {
		return nil, reject("Account is closed")
	}
	if !amount.IsPositive() {
		return nil, reject("Withdrawal amount must be positive")
	}
	if amount.GreaterThan(account.Balance) {
		return nil, reject("Insufficient funds")
	}
	account.Balance = account.Balance.Sub(amount)
	f.record(accountNumber, models.KindWithdrawal, amount, account.Balance, description, f.tick())
	cp := *account
	return &cp, nil
}

func (f *fakeLedger) Close(ctx context.Context, accountNumber string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Close")

	account, ok := f.accounts[accountNumber]
	if !ok {
		return nil, notFound()
	}
	if !account.IsActive {
		return nil, reject("Account is already closed")
	}
	account.IsActive = false
	cp := *account
	return &cp, nil
}

func (f *fakeLedger) AccountTransactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("AccountTransactions")

	return f.feedLocked(accountNumber), nil
}

func (f *fakeLedger) Transactions(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Transactions")

	return f.feedLocked(accountNumber), nil
}

// feedLocked returns newest-insertion-first on purpose: the wire order is
// not guaranteed and callers must sort for themselves.
func (f *fakeLedger) feedLocked(accountNumber string) []models.Transaction {
	var out []models.Transaction
	for i := len(f.records) - 1; i >= 0; i-- {
		record := f.records[i]
		if accountNumber != "" && record.account != accountNumber {
			continue
		}
		out = append(out, record.tx)
	}
	return out
}

func (f *fakeLedger) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (*models.TransferResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Transfer")

	from, ok := f.accounts[fromAccount]
	if !ok {
		return nil, notFound()
	}
	to, ok := f.accounts[toAccount]
	if !ok {
		return nil, notFound()
	}
	if !amount.IsPositive() {
		return nil, reject("Transfer amount must be positive")
	}
	if !from.IsActive || !to.IsActive {
		return nil, reject("Account is closed")
	}
	if amount.GreaterThan(from.Balance) {
		return nil, reject("Insufficient funds")
	}

	// Atomic on the server: both legs share one timestamp.
	ts := f.tick()
	from.Balance = from.Balance.Sub(amount)
	f.record(fromAccount, models.KindTransferOut, amount, from.Balance, "Transfer to account "+toAccount, ts)
	to.Balance = to.Balance.Add(amount)
	f.record(toAccount, models.KindTransferIn, amount, to.Balance, "Transfer from account "+fromAccount, ts)

	fromCopy, toCopy := *from, *to
	return &models.TransferResult{FromAccount: fromCopy, ToAccount: toCopy}, nil
}

func (f *fakeLedger) Summary(ctx context.Context) (*models.BankSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Summary")

	accounts := make([]models.Account, 0, len(f.order))
	for _, number := range f.order {
		accounts = append(accounts, *f.accounts[number])
	}
	transactions := make([]models.Transaction, 0, len(f.records))
	for _, record := range f.records {
		transactions = append(transactions, record.tx)
	}
	summary := analytics.Reduce(accounts, transactions)
	return &summary, nil
}
