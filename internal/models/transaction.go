package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the ledger-assigned category of a transaction. Amounts
// are always stored positive; the kind implies the sign.
type TransactionKind string

const (
	KindInitial     TransactionKind = "INITIAL"
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdrawal  TransactionKind = "WITHDRAWAL"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
)

// Transaction is immutable once written by the ledger. BalanceAfter is the
// ledger's own record at write time, not something recomputed here.
type Transaction struct {
	ID           int64           `json:"id"`
	Kind         TransactionKind `json:"transaction_type"`
	KindDisplay  string          `json:"transaction_type_display,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

func (t *Transaction) Validate() error {
	if t.ID == 0 {
		return fmt.Errorf("%w: transaction without id", ErrMalformedPayload)
	}
	if t.Kind == "" {
		return fmt.Errorf("%w: transaction %d without type", ErrMalformedPayload, t.ID)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: transaction %d with non-positive amount %s", ErrMalformedPayload, t.ID, t.Amount)
	}
	if t.Timestamp.IsZero() {
		return fmt.Errorf("%w: transaction %d without timestamp", ErrMalformedPayload, t.ID)
	}
	return nil
}

// SortByTimestamp orders a feed oldest-first. The ledger does not guarantee
// any order on receipt, so every consumer that needs chronology goes through
// here. Equal timestamps keep their received order.
func SortByTimestamp(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.Before(transactions[j].Timestamp)
	})
}

// SortByTimestampDesc orders a feed newest-first, for recent-activity views.
func SortByTimestampDesc(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.After(transactions[j].Timestamp)
	})
}
