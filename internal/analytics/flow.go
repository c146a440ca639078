package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"bank-dashboard/internal/models"
)

// FlowWindowDays is the width of the rolling inflow/outflow view.
const FlowWindowDays = 7

// bucketLabelLayout doubles as the bucket key: a transaction lands in a
// bucket iff its formatted date equals the bucket's label. Matching on the
// rendered label rather than on day arithmetic keeps the grouping pinned to
// the same calendar convention the chart displays, including around midnight.
const bucketLabelLayout = "Jan 02"

// FlowBucket is one calendar day of summed credits and debits.
type FlowBucket struct {
	Label       string          `json:"date"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
}

// FlowWindow folds transactions into the last FlowWindowDays calendar days
// ending at now, oldest bucket first. Transactions dated outside the window
// are dropped. The result always has exactly FlowWindowDays buckets, even for
// empty input. An unknown transaction kind aborts the fold.
func FlowWindow(now time.Time, transactions []models.Transaction) ([]FlowBucket, error) {
	buckets := make([]FlowBucket, FlowWindowDays)
	index := make(map[string]int, FlowWindowDays)

	for i := 0; i < FlowWindowDays; i++ {
		day := now.AddDate(0, 0, i-(FlowWindowDays-1))
		label := day.Format(bucketLabelLayout)
		buckets[i] = FlowBucket{
			Label:       label,
			Deposits:    decimal.Zero,
			Withdrawals: decimal.Zero,
		}
		index[label] = i
	}

	// Coarse bounds keep a transaction from a previous year out of a bucket
	// whose label happens to repeat. Deliberately a full day wide on each
	// side: the label match below stays the single authority near midnight.
	earliest := now.AddDate(0, 0, -FlowWindowDays)
	latest := now.AddDate(0, 0, 1)

	for _, tx := range transactions {
		flow, err := Classify(tx.Kind)
		if err != nil {
			return nil, err
		}

		ts := tx.Timestamp.In(now.Location())
		if ts.Before(earliest) || ts.After(latest) {
			continue
		}

		// Format in the window's own location so the key and the label agree.
		label := ts.Format(bucketLabelLayout)
		i, ok := index[label]
		if !ok {
			continue
		}

		if flow.IsCredit {
			buckets[i].Deposits = buckets[i].Deposits.Add(tx.Amount)
		} else {
			buckets[i].Withdrawals = buckets[i].Withdrawals.Add(tx.Amount)
		}
	}

	return buckets, nil
}
