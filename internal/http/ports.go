package http

import (
	"context"

	"spendsmart/internal/api"
	"spendsmart/internal/auth"
	"spendsmart/internal/core"
)

// Backend is the REST client surface the pages use. *api.Client
// satisfies it.
type Backend interface {
	auth.Backend

	ForgotPassword(ctx context.Context, email string) (api.Payload, error)
	VerifyResetOTP(ctx context.Context, email, otp string) (api.Payload, error)
	ResetPassword(ctx context.Context, req core.PasswordReset) (api.Payload, error)
	ResendResetOTP(ctx context.Context, email string) (api.Payload, error)

	ListCategories(ctx context.Context, t core.TransactionType) ([]core.Category, error)
	GetCategory(ctx context.Context, id int64) (core.Category, error)
	CreateCategory(ctx context.Context, in core.CategoryInput) (core.Category, error)
	UpdateCategory(ctx context.Context, id int64, in core.CategoryInput) (core.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListTransactions(ctx context.Context, f core.TransactionFilter) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, in core.TransactionInput) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	DashboardSummary(ctx context.Context, r core.DateRange) (core.DashboardSummary, error)

	GetProfile(ctx context.Context) (core.Profile, error)
	UpdateProfile(ctx context.Context, in core.ProfileUpdate) (core.Profile, error)
}

var _ Backend = (*api.Client)(nil)
