package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"spendsmart/internal/core"
)

// ListTransactions returns transactions matching the filter.
func (c *Client) ListTransactions(ctx context.Context, f core.TransactionFilter) ([]core.Transaction, error) {
	q := url.Values{}
	for k, v := range f.Query() {
		q.Set(k, v)
	}
	var out []core.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", q, nil, &out)
	return out, err
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var out core.Transaction
	err := c.do(ctx, http.MethodGet, transactionPath(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	var out core.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions", nil, in, &out)
	return out, err
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, in core.TransactionInput) (core.Transaction, error) {
	var out core.Transaction
	err := c.do(ctx, http.MethodPut, transactionPath(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, transactionPath(id), nil, nil, nil)
}

// DashboardSummary returns totals, trend and category breakdown for the range.
func (c *Client) DashboardSummary(ctx context.Context, r core.DateRange) (core.DashboardSummary, error) {
	q := url.Values{}
	if !r.Start.IsZero() {
		q.Set("startDate", r.Start.String())
	}
	if !r.End.IsZero() {
		q.Set("endDate", r.End.String())
	}
	var out core.DashboardSummary
	err := c.do(ctx, http.MethodGet, "/transactions/dashboard/summary", q, nil, &out)
	return out, err
}

func transactionPath(id int64) string {
	return "/transactions/" + strconv.FormatInt(id, 10)
}
