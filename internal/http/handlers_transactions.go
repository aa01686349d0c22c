package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"spendsmart/internal/core"
)

// transactionForm echoes the submitted form back to the page.
type transactionForm struct {
	Type        string
	CategoryID  int64
	Amount      string
	Date        string
	Description string
}

type transactionFilterForm struct {
	StartDate  string
	EndDate    string
	Type       string
	CategoryID string
}

type transactionsView struct {
	Filter       transactionFilterForm
	Form         transactionForm
	Editing      int64
	Fields       core.FieldErrors
	Error        string
	Transactions []core.Transaction
	Summary      *core.DashboardSummary
	Categories   []core.Category
}

// parseTransactionFilter reads the list filters. Invalid values are dropped
// and reported through the returned error.
func parseTransactionFilter(q url.Values) (core.TransactionFilter, transactionFilterForm, error) {
	var (
		f    core.TransactionFilter
		form transactionFilterForm
		errs []error
	)

	rng, err := ParseDateRange(q, core.DateRange{})
	if err != nil {
		errs = append(errs, err)
	} else {
		f.Range = rng
		form.StartDate, form.EndDate = rng.Start.String(), rng.End.String()
	}

	if t, err := core.ParseTransactionType(q.Get("type")); err != nil {
		errs = append(errs, err)
	} else {
		f.Type = t
		form.Type = t.String()
	}

	if raw := strings.TrimSpace(q.Get("categoryId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, errInvalidID)
		} else {
			f.CategoryID = id
			form.CategoryID = raw
		}
	}
	return f, form, errors.Join(errs...)
}

func newTransactionForm(t core.TransactionType, today core.Date) transactionForm {
	if !t.IsValid() {
		t = core.Expense
	}
	return transactionForm{Type: t.String(), Date: today.String()}
}

func transactionFormOf(tx core.Transaction) transactionForm {
	return transactionForm{
		Type:        tx.Type.String(),
		CategoryID:  tx.CategoryID,
		Amount:      tx.Amount.Decimal(),
		Date:        tx.Date.String(),
		Description: tx.Description,
	}
}

// parseTransactionInput converts the submitted form. Field errors cover
// both unparsable input and failed validation.
func parseTransactionInput(form *RequestBodyParser) (core.TransactionInput, transactionForm, core.FieldErrors) {
	tf := transactionForm{
		Type:        strings.ToUpper(form.Get("type")),
		Amount:      form.Get("amount"),
		Date:        form.Get("date"),
		Description: form.Get("description"),
	}
	fe := core.FieldErrors{}

	var in core.TransactionInput
	in.Description = tf.Description
	if t, err := core.ParseTransactionType(tf.Type); err == nil {
		in.Type = t
	}
	if id, err := strconv.ParseInt(form.Get("categoryId"), 10, 64); err == nil {
		in.CategoryID = id
		tf.CategoryID = id
	}
	if tf.Amount != "" {
		cents, err := core.ParseDecimalToCents(tf.Amount)
		if err != nil {
			fe["amount"] = "Please enter a valid amount"
		}
		in.Amount = core.Money{Cents: cents}
	}
	if tf.Date != "" {
		d, err := core.ParseDate(tf.Date)
		if err != nil {
			fe["date"] = "Please enter a valid date"
		}
		in.Date = d
	}

	var vfe core.FieldErrors
	if errors.As(in.Validate(), &vfe) {
		for field, msg := range vfe {
			if _, ok := fe[field]; !ok {
				fe[field] = msg
			}
		}
	}
	if len(fe) == 0 {
		return in, tf, nil
	}
	return in, tf, fe
}

// loadTransactions fills the list, the summary for the filter's range and
// every category for the form.
func (s *Server) loadTransactions(ctx context.Context, view *transactionsView, f core.TransactionFilter) error {
	var summary core.DashboardSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view.Transactions, err = s.api.ListTransactions(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.summary(gctx, f.Range)
		return err
	})
	g.Go(func() error {
		var err error
		view.Categories, err = s.categories(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	view.Summary = &summary
	return nil
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) error {
	filter, filterForm, err := parseTransactionFilter(r.URL.Query())
	view := transactionsView{
		Filter: filterForm,
		Form:   newTransactionForm(filter.Type, core.DateOf(s.now())),
	}
	if err != nil {
		view.Error = msgInvalidFilter
	}
	if err := s.loadTransactions(r.Context(), &view, filter); err != nil {
		return err
	}
	s.render(w, r, http.StatusOK, "transactions", view)
	return nil
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	tx, err := s.api.GetTransaction(r.Context(), id)
	if err != nil {
		return err
	}

	view := transactionsView{Form: transactionFormOf(tx), Editing: id}
	if err := s.loadTransactions(r.Context(), &view, core.TransactionFilter{}); err != nil {
		return err
	}
	s.render(w, r, http.StatusOK, "transactions", view)
	return nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) error {
	return s.saveTransaction(w, r, 0)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	return s.saveTransaction(w, r, id)
}

// saveTransaction creates (id 0) or updates a transaction. Invalid input and
// backend rejections re-render the form.
func (s *Server) saveTransaction(w http.ResponseWriter, r *http.Request, id int64) error {
	form, err := readBody(w, r)
	if err != nil {
		return err
	}
	in, tf, fe := parseTransactionInput(form)
	view := transactionsView{Form: tf, Editing: id}

	ctx := r.Context()
	if fe != nil {
		view.Fields = fe
		view.Error = core.MsgFixForm
		return s.rerenderTransactions(w, r, view)
	}

	done := msgTransactionAdded
	if id == 0 {
		_, err = s.api.CreateTransaction(ctx, in)
	} else {
		_, err = s.api.UpdateTransaction(ctx, id, in)
		done = msgTransactionUpdated
	}
	if err != nil {
		if s.sessionExpired(w, r, err) {
			return nil
		}
		view.Error = messageOr(err, msgTransactionSave)
		return s.rerenderTransactions(w, r, view)
	}

	s.transactionsChanged(ctx)
	setFlash(w, flashSuccess, done)
	redirect(w, r, "/transactions")
	return nil
}

func (s *Server) rerenderTransactions(w http.ResponseWriter, r *http.Request, view transactionsView) error {
	if err := s.loadTransactions(r.Context(), &view, core.TransactionFilter{}); err != nil {
		return err
	}
	s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "transactions", view)
	return nil
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	if err := s.api.DeleteTransaction(r.Context(), id); err != nil {
		return err
	}

	s.transactionsChanged(r.Context())
	if isHTMX(r) {
		NewHTMXResponse().TriggerSuccessNotification(msgTransactionDeleted).Write(w)
		return nil
	}
	setFlash(w, flashSuccess, msgTransactionDeleted)
	redirect(w, r, "/transactions")
	return nil
}
