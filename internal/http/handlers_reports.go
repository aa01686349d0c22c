package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"

	"spendsmart/internal/core"
)

const reportsDefaultMonths = 5

type reportsView struct {
	Range     core.DateRange
	Error     string
	Summary   core.DashboardSummary
	Breakdown []core.CategoryAmount
	Trend     []core.MonthlyTrend
}

// reportRange reads the requested range, falling back to the last five
// months when it is missing or invalid.
func (s *Server) reportRange(r *http.Request) (core.DateRange, bool) {
	fallback := core.LastMonths(s.now(), reportsDefaultMonths)
	rng, err := ParseDateRange(r.URL.Query(), fallback)
	if err != nil {
		return fallback, false
	}
	return rng, true
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) error {
	rng, ok := s.reportRange(r)
	summary, err := s.summary(r.Context(), rng)
	if err != nil {
		return err
	}

	view := reportsView{
		Range:     rng,
		Summary:   summary,
		Breakdown: summary.ExpenseBreakdown(),
		Trend:     summary.MonthlyTrend,
	}
	if !ok {
		view.Error = msgInvalidRange
	}
	s.render(w, r, http.StatusOK, "reports", view)
	return nil
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) error {
	rng, _ := s.reportRange(r)
	summary, err := s.summary(r.Context(), rng)
	if err != nil {
		return err
	}

	breakdown := summary.ExpenseBreakdown()
	if len(breakdown) == 0 {
		noReportData(w, r, rng)
		return nil
	}

	data, err := reportCSV(rng, summary, breakdown)
	if err != nil {
		return fmt.Errorf("build report csv: %w", err)
	}

	filename := fmt.Sprintf("spendsmart-report-%s-to-%s.csv", rng.Start, rng.End)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}

type reportPrintView struct {
	Range       core.DateRange
	Summary     core.DashboardSummary
	Breakdown   []core.CategoryAmount
	GeneratedAt core.Timestamp
}

// handleReportPrint renders the breakdown and summary as a standalone page
// meant for the browser's print dialog.
func (s *Server) handleReportPrint(w http.ResponseWriter, r *http.Request) error {
	rng, _ := s.reportRange(r)
	summary, err := s.summary(r.Context(), rng)
	if err != nil {
		return err
	}

	breakdown := summary.ExpenseBreakdown()
	if len(breakdown) == 0 {
		noReportData(w, r, rng)
		return nil
	}

	s.render(w, r, http.StatusOK, "report_print", reportPrintView{
		Range:       rng,
		Summary:     summary,
		Breakdown:   breakdown,
		GeneratedAt: core.Timestamp{Time: s.now()},
	})
	return nil
}

// noReportData sends the user back to the report for rng with an error flash.
func noReportData(w http.ResponseWriter, r *http.Request, rng core.DateRange) {
	setFlash(w, flashError, msgNoReportData)
	redirect(w, r, "/reports?"+url.Values{
		"startDate": {rng.Start.String()},
		"endDate":   {rng.End.String()},
	}.Encode())
}

// reportCSV lays out the breakdown followed by a summary block.
func reportCSV(rng core.DateRange, summary core.DashboardSummary, breakdown []core.CategoryAmount) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	records := [][]string{{"Category", "Amount", "Percentage"}}
	for _, c := range breakdown {
		records = append(records, []string{c.CategoryName, c.Amount.Decimal(), fmt.Sprintf("%.2f%%", c.Percentage)})
	}
	records = append(records,
		[]string{},
		[]string{"Summary", "", ""},
		[]string{"Total Income", summary.TotalIncome.Decimal(), ""},
		[]string{"Total Expense", summary.TotalExpense.Decimal(), ""},
		[]string{"Balance", summary.Balance.Decimal(), ""},
		[]string{"Average Daily Expense", summary.AverageDailyExpense.Decimal(), ""},
		[]string{"Date Range", fmt.Sprintf("%s to %s", rng.Start, rng.End), ""},
	)

	if err := cw.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
