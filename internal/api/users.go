package api

import (
	"context"
	"net/http"

	"spendsmart/internal/core"
)

func (c *Client) GetProfile(ctx context.Context) (core.Profile, error) {
	var out core.Profile
	err := c.do(ctx, http.MethodGet, "/user/profile", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, in core.ProfileUpdate) (core.Profile, error) {
	var out core.Profile
	err := c.do(ctx, http.MethodPut, "/user/profile", nil, in, &out)
	return out, err
}
