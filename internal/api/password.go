package api

import (
	"context"
	"net/http"

	"spendsmart/internal/core"
)

func (c *Client) ForgotPassword(ctx context.Context, email string) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, "/password/forgot", nil, emailOTP{Email: email}, &out)
	return out, err
}

func (c *Client) VerifyResetOTP(ctx context.Context, email, otp string) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, "/password/verify-reset-otp", nil, emailOTP{Email: email, OTP: otp}, &out)
	return out, err
}

func (c *Client) ResetPassword(ctx context.Context, req core.PasswordReset) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, "/password/reset", nil, req, &out)
	return out, err
}

func (c *Client) ResendResetOTP(ctx context.Context, email string) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, "/password/resend-reset-otp", nil, emailOTP{Email: email}, &out)
	return out, err
}
