// Package auth holds the per-browser session lifecycle: restoring a session
// on page load, login, logout, registration and OTP verification.
package auth

import (
	"context"

	"spendsmart/internal/api"
	"spendsmart/internal/core"
)

// User-facing fallbacks used when the backend gives no message.
const (
	MsgLoginFailed    = "Login failed. Please try again."
	MsgRegisterFailed = "Registration failed. Please try again."
	MsgVerifyFailed   = "OTP verification failed. Please try again."
	MsgResendFailed   = "Failed to resend OTP. Please try again."
	MsgNotInitialized = "Not initialized"
)

// State is the observable session state.
type State struct {
	Loading         bool
	IsAuthenticated bool
	User            *core.User
}

// Result is what every lifecycle operation returns instead of an error.
type Result struct {
	Success bool
	Error   string
	Data    api.Payload
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Service is the session lifecycle as seen by pages and guards.
type Service interface {
	State() State
	Login(ctx context.Context, username, password string) Result
	Logout(ctx context.Context)
	Register(ctx context.Context, req core.RegisterRequest) Result
	VerifyOTP(ctx context.Context, email, otp string) Result
	ResendOTP(ctx context.Context, email string) Result
}

// Backend is the subset of the REST client the session needs.
type Backend interface {
	Login(ctx context.Context, username, password string) (core.AuthResponse, error)
	Register(ctx context.Context, req core.RegisterRequest) (api.Payload, error)
	VerifyOTP(ctx context.Context, email, otp string) (api.Payload, error)
	ResendOTP(ctx context.Context, email string) (api.Payload, error)
}

// backendMessage returns the backend's message for err, or fallback.
func backendMessage(err error, fallback string) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return fallback
}
