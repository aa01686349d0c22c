package core

import (
	"sort"
	"time"
)

// CategoryAmount is one slice of the category breakdown.
type CategoryAmount struct {
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Type         TransactionType `json:"type"`
	Amount       Money           `json:"amount"`
	Percentage   float64         `json:"percentage"`
}

// MonthlyTrend holds income and expense totals for a "yyyy-MM" month.
type MonthlyTrend struct {
	Month   string `json:"month"`
	Income  Money  `json:"income"`
	Expense Money  `json:"expense"`
}

// DashboardSummary mirrors the backend's aggregated view over a date range.
type DashboardSummary struct {
	TotalIncome         Money            `json:"totalIncome"`
	TotalExpense        Money            `json:"totalExpense"`
	Balance             Money            `json:"balance"`
	AverageDailyExpense Money            `json:"averageDailyExpense"`
	TotalTransactions   int64            `json:"totalTransactions"`
	CategoryBreakdown   []CategoryAmount `json:"categoryBreakdown"`
	MonthlyTrend        []MonthlyTrend   `json:"monthlyTrend"`
}

// ExpenseBreakdown returns expense slices with a positive amount, largest first.
func (s DashboardSummary) ExpenseBreakdown() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(s.CategoryBreakdown))
	for _, c := range s.CategoryBreakdown {
		if c.Type == Expense && c.Amount.Cents > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// RecentTrend returns the last n months of the trend, newest first.
func (s DashboardSummary) RecentTrend(n int) []MonthlyTrend {
	trend := s.MonthlyTrend
	if len(trend) > n {
		trend = trend[len(trend)-n:]
	}
	out := make([]MonthlyTrend, len(trend))
	for i, m := range trend {
		out[len(trend)-1-i] = m
	}
	return out
}

// Label renders the month as "Jan 2025"; unparsable months are returned unchanged.
func (m MonthlyTrend) Label() string {
	t, err := time.Parse("2006-01", m.Month)
	if err != nil {
		return m.Month
	}
	return t.Format("Jan 2006")
}

// Net is income minus expense for the month.
func (m MonthlyTrend) Net() Money {
	return Money{Cents: m.Income.Cents - m.Expense.Cents}
}

// RecentTransactions returns at most n transactions, newest date first.
func RecentTransactions(txs []Transaction, n int) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
