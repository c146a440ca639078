// Package analytics derives dashboard figures from raw ledger snapshots.
// Everything in this package is a pure function: same inputs and clock, same
// outputs. No state, no goroutines, no network.
package analytics

import (
	"fmt"

	"bank-dashboard/internal/models"
)

// UnknownKindError reports a transaction kind outside the ledger contract.
// It must reach the caller: guessing a sign here would corrupt every sum
// derived downstream.
type UnknownKindError struct {
	Kind models.TransactionKind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown transaction kind %q", e.Kind)
}

// Flow is the signed classification of a transaction kind.
type Flow struct {
	Sign     int
	IsCredit bool
}

var flows = map[models.TransactionKind]Flow{
	models.KindInitial:     {Sign: +1, IsCredit: true},
	models.KindDeposit:     {Sign: +1, IsCredit: true},
	models.KindTransferIn:  {Sign: +1, IsCredit: true},
	models.KindWithdrawal:  {Sign: -1, IsCredit: false},
	models.KindTransferOut: {Sign: -1, IsCredit: false},
}

// Classify maps a kind to its flow. Total over the five ledger kinds; any
// other value is a contract violation and comes back as *UnknownKindError.
func Classify(kind models.TransactionKind) (Flow, error) {
	flow, ok := flows[kind]
	if !ok {
		return Flow{}, &UnknownKindError{Kind: kind}
	}
	return flow, nil
}
