package api

import (
	"context"
	"net/http"

	"spendsmart/internal/core"
)

// Payload is an opaque JSON object returned by the backend.
type Payload map[string]any

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type emailOTP struct {
	Email string `json:"email"`
	OTP   string `json:"otp,omitempty"`
}

// Register creates a pending account; the backend emails an OTP.
func (c *Client) Register(ctx context.Context, req core.RegisterRequest) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out)
	return out, err
}

// VerifyOTP completes a registration. It does not sign the user in.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, emailOTP{Email: email, OTP: otp}, &out)
	return out, err
}

func (c *Client) ResendOTP(ctx context.Context, email string) (Payload, error) {
	var out Payload
	err := c.do(ctx, http.MethodPost, "/auth/resend-otp", nil, emailOTP{Email: email}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, username, password string) (core.AuthResponse, error) {
	var out core.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, credentials{Username: username, Password: password}, &out)
	return out, err
}
