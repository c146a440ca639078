package services

import (
	"context"
	"time"

	"bank-dashboard/internal/analytics"
	"bank-dashboard/internal/models"
	"bank-dashboard/internal/utils"
	"bank-dashboard/internal/worker"
)

// recentTransactions is how many rows the dashboard's activity table shows.
const recentTransactions = 10

// DashboardView is one fully composed dashboard: the ledger's own summary
// plus everything derived locally from the raw feed.
type DashboardView struct {
	Summary      models.BankSummary       `json:"summary"`
	Flow         []analytics.FlowBucket   `json:"flow"`
	Distribution []analytics.BalanceShare `json:"distribution"`
	Recent       []models.Transaction     `json:"recent_transactions"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

type DashboardService struct {
	ledger Ledger
	pool   *worker.Pool
	now    func() time.Time
}

func NewDashboardService(ledger Ledger, pool *worker.Pool) *DashboardService {
	return &DashboardService{
		ledger: ledger,
		pool:   pool,
		now:    time.Now,
	}
}

// View fetches summary, accounts, and the global transaction feed in
// parallel, joins them, and runs the derived-analytics fold. Any fetch
// failure fails the whole view; a context cancelled before the join yields
// ErrStaleView and the partial results are thrown away.
func (s *DashboardService) View(ctx context.Context) (*DashboardView, error) {
	var (
		summary      *models.BankSummary
		accounts     []models.Account
		transactions []models.Transaction
	)

	err := joinFetches(ctx, s.pool, []fetchTask{
		{id: "dashboard-summary", run: func() error {
			var err error
			summary, err = s.ledger.Summary(ctx)
			return err
		}},
		{id: "dashboard-accounts", run: func() error {
			var err error
			accounts, err = s.ledger.ListAccounts(ctx)
			return err
		}},
		{id: "dashboard-transactions", run: func() error {
			var err error
			transactions, err = s.ledger.Transactions(ctx, "")
			return err
		}},
	})
	if err != nil {
		return nil, err
	}

	now := s.now()

	// The flow fold consumes the whole feed, not just the visible rows, so
	// the 7-day window is complete.
	flow, err := analytics.FlowWindow(now, transactions)
	if err != nil {
		return nil, err
	}

	s.reconcile(*summary, accounts)

	models.SortByTimestampDesc(transactions)
	recent := transactions
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}

	return &DashboardView{
		Summary:      *summary,
		Flow:         flow,
		Distribution: analytics.TopBalances(accounts, analytics.TopAccounts),
		Recent:       recent,
		GeneratedAt:  now,
	}, nil
}

// reconcile recomputes the account-derived scalars locally and flags drift
// against the ledger's summary. The ledger stays authoritative; this only
// makes a stale or inconsistent snapshot visible in the logs.
func (s *DashboardService) reconcile(remote models.BankSummary, accounts []models.Account) {
	local := analytics.Reduce(accounts, nil)
	if local.TotalAccounts != remote.TotalAccounts ||
		local.ActiveAccounts != remote.ActiveAccounts ||
		!local.TotalDeposits.Equal(remote.TotalDeposits) {
		utils.LogWarning("Dashboard",
			"summary drift: ledger reports %d/%d accounts, %s deposits; snapshot folds to %d/%d, %s",
			remote.ActiveAccounts, remote.TotalAccounts, remote.TotalDeposits.StringFixed(2),
			local.ActiveAccounts, local.TotalAccounts, local.TotalDeposits.StringFixed(2))
	}
}
