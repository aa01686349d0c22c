package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsmart/internal/core"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func recordingClient(t *testing.T, status int, reply string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	c := newTestClient(t, staticToken("tok"), func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.body))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(status)
		io.WriteString(w, reply)
	})
	return c, rec
}

func TestLoginEndpoint(t *testing.T) {
	c, rec := recordingClient(t, 200, `{"token":"abc123","username":"alice","email":"a@x.com"}`)

	resp, err := c.Login(context.Background(), "alice", "correct")
	require.NoError(t, err)
	assert.Equal(t, core.AuthResponse{Token: "abc123", Username: "alice", Email: "a@x.com"}, resp)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/auth/login", rec.path)
	assert.Equal(t, map[string]any{"username": "alice", "password": "correct"}, rec.body)
}

func TestAuthAndPasswordEndpoints(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		call     func(c *Client) (Payload, error)
		path     string
		wantBody map[string]any
	}{
		{
			name: "register",
			call: func(c *Client) (Payload, error) {
				return c.Register(ctx, core.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1"})
			},
			path: "/api/auth/register",
		},
		{
			name:     "verify otp",
			call:     func(c *Client) (Payload, error) { return c.VerifyOTP(ctx, "a@x.com", "123456") },
			path:     "/api/auth/verify-otp",
			wantBody: map[string]any{"email": "a@x.com", "otp": "123456"},
		},
		{
			name:     "resend otp",
			call:     func(c *Client) (Payload, error) { return c.ResendOTP(ctx, "a@x.com") },
			path:     "/api/auth/resend-otp",
			wantBody: map[string]any{"email": "a@x.com"},
		},
		{
			name:     "forgot password",
			call:     func(c *Client) (Payload, error) { return c.ForgotPassword(ctx, "a@x.com") },
			path:     "/api/password/forgot",
			wantBody: map[string]any{"email": "a@x.com"},
		},
		{
			name:     "verify reset otp",
			call:     func(c *Client) (Payload, error) { return c.VerifyResetOTP(ctx, "a@x.com", "654321") },
			path:     "/api/password/verify-reset-otp",
			wantBody: map[string]any{"email": "a@x.com", "otp": "654321"},
		},
		{
			name: "reset password",
			call: func(c *Client) (Payload, error) {
				return c.ResetPassword(ctx, core.PasswordReset{Email: "a@x.com", NewPassword: "newpass", ConfirmPassword: "newpass"})
			},
			path:     "/api/password/reset",
			wantBody: map[string]any{"email": "a@x.com", "newPassword": "newpass", "confirmPassword": "newpass"},
		},
		{
			name:     "resend reset otp",
			call:     func(c *Client) (Payload, error) { return c.ResendResetOTP(ctx, "a@x.com") },
			path:     "/api/password/resend-reset-otp",
			wantBody: map[string]any{"email": "a@x.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := recordingClient(t, 200, `{"message":"ok","email":"a@x.com"}`)
			out, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", out["email"])
			assert.Equal(t, http.MethodPost, rec.method)
			assert.Equal(t, tt.path, rec.path)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, rec.body)
			}
		})
	}
}

func TestRegisterDoesNotSendConfirmation(t *testing.T) {
	c, rec := recordingClient(t, 201, `{"message":"User registered successfully","username":"alice"}`)
	out, err := c.Register(context.Background(), core.RegisterRequest{Username: "alice", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", out["username"])
	assert.NotContains(t, rec.body, "confirmPassword")
}

func TestCategoryEndpoints(t *testing.T) {
	ctx := context.Background()

	c, rec := recordingClient(t, 200, `[{"id":1,"name":"Food","type":"EXPENSE"}]`)
	list, err := c.ListCategories(ctx, core.Expense)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Food", list[0].Name)
	assert.Equal(t, "type=EXPENSE", rec.query)

	c, rec = recordingClient(t, 200, `{"id":9,"name":"Rent","type":"EXPENSE"}`)
	cat, err := c.UpdateCategory(ctx, 9, core.CategoryInput{Name: "Rent", Type: core.Expense})
	require.NoError(t, err)
	assert.Equal(t, int64(9), cat.ID)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/categories/9", rec.path)

	c, rec = recordingClient(t, 204, ``)
	require.NoError(t, c.DeleteCategory(ctx, 9))
	assert.Equal(t, http.MethodDelete, rec.method)
}

func TestTransactionEndpoints(t *testing.T) {
	ctx := context.Background()

	c, rec := recordingClient(t, 200, `[{"id":3,"type":"INCOME","amount":1500.5,"date":"2025-01-02","categoryId":2}]`)
	txs, err := c.ListTransactions(ctx, core.TransactionFilter{
		Range: core.DateRange{Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 1, 31)},
		Type:  core.Income,
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(150050), txs[0].Amount.Cents)
	assert.Equal(t, "endDate=2025-01-31&startDate=2025-01-01&type=INCOME", rec.query)

	c, rec = recordingClient(t, 200, `{"id":4,"type":"EXPENSE","amount":12.5,"date":"2025-01-03","categoryId":2}`)
	_, err = c.CreateTransaction(ctx, core.TransactionInput{
		CategoryID: 2, Type: core.Expense, Amount: core.Money{Cents: 1250}, Date: core.NewDate(2025, 1, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, 12.5, rec.body["amount"])
	assert.Equal(t, "2025-01-03", rec.body["date"])

	c, rec = recordingClient(t, 200, `{"totalIncome":100,"totalExpense":40,"balance":60,"monthlyTrend":[{"month":"2025-01","income":100,"expense":40}]}`)
	sum, err := c.DashboardSummary(ctx, core.DateRange{Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 1, 30)})
	require.NoError(t, err)
	assert.Equal(t, "/api/transactions/dashboard/summary", rec.path)
	assert.Equal(t, "endDate=2025-01-30&startDate=2025-01-01", rec.query)
	assert.Equal(t, int64(6000), sum.Balance.Cents)
	require.Len(t, sum.MonthlyTrend, 1)
}

func TestProfileEndpoints(t *testing.T) {
	c, rec := recordingClient(t, 200, `{"username":"alice","firstname":"Alice","email":"a@x.com"}`)
	p, err := c.UpdateProfile(context.Background(), core.ProfileUpdate{Firstname: "Alice", Lastname: "Liddell", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Firstname)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/user/profile", rec.path)
	assert.Contains(t, rec.body, "phoneNumber")
	assert.Nil(t, rec.body["phoneNumber"])
}
