package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"spendsmart/internal/core"
)

// ListCategories returns the user's categories, optionally of one type.
func (c *Client) ListCategories(ctx context.Context, t core.TransactionType) ([]core.Category, error) {
	var q url.Values
	if t != "" {
		q = url.Values{"type": {t.String()}}
	}
	var out []core.Category
	err := c.do(ctx, http.MethodGet, "/categories", q, nil, &out)
	return out, err
}

func (c *Client) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var out core.Category
	err := c.do(ctx, http.MethodGet, categoryPath(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, in core.CategoryInput) (core.Category, error) {
	var out core.Category
	err := c.do(ctx, http.MethodPost, "/categories", nil, in, &out)
	return out, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in core.CategoryInput) (core.Category, error) {
	var out core.Category
	err := c.do(ctx, http.MethodPut, categoryPath(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, categoryPath(id), nil, nil, nil)
}

func categoryPath(id int64) string {
	return "/categories/" + strconv.FormatInt(id, 10)
}
