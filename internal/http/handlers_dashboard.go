package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"spendsmart/internal/core"
)

const (
	dashboardDays        = 30
	dashboardRecent      = 5
	dashboardTrendMonths = 6
)

type dashboardView struct {
	Range     core.DateRange
	Summary   core.DashboardSummary
	Recent    []core.Transaction
	Trend     []core.MonthlyTrend
	Breakdown []core.CategoryAmount
}

// handleDashboard shows the last 30 days: totals, recent activity, the
// monthly trend and where the money went.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) error {
	rng := core.LastDays(s.now(), dashboardDays)

	var (
		summary core.DashboardSummary
		txs     []core.Transaction
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		summary, err = s.summary(ctx, rng)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.api.ListTransactions(ctx, core.TransactionFilter{Range: rng})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.render(w, r, http.StatusOK, "dashboard", dashboardView{
		Range:     rng,
		Summary:   summary,
		Recent:    core.RecentTransactions(txs, dashboardRecent),
		Trend:     summary.RecentTrend(dashboardTrendMonths),
		Breakdown: summary.ExpenseBreakdown(),
	})
	return nil
}
