package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        RegisterRequest
		wantFields FieldErrors
	}{
		{
			name: "valid",
			req:  RegisterRequest{Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1"},
		},
		{
			name:       "passwords differ",
			req:        RegisterRequest{Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret2"},
			wantFields: FieldErrors{"confirmPassword": MsgPasswordMismatch},
		},
		{
			name:       "password too short",
			req:        RegisterRequest{Email: "a@x.com", Password: "abc", ConfirmPassword: "abc"},
			wantFields: FieldErrors{"password": MsgPasswordTooShort},
		},
		{
			name:       "email without at sign",
			req:        RegisterRequest{Email: "alice.example.com", Password: "secret1", ConfirmPassword: "secret1"},
			wantFields: FieldErrors{"email": MsgInvalidEmail},
		},
		{
			name: "everything wrong",
			req:  RegisterRequest{Email: "nope", Password: "a", ConfirmPassword: "b"},
			wantFields: FieldErrors{
				"confirmPassword": MsgPasswordMismatch,
				"password":        MsgPasswordTooShort,
				"email":           MsgInvalidEmail,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			var fe FieldErrors
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantFields, fe)
		})
	}
}

func TestRegisterRequestJSONOmitsConfirmation(t *testing.T) {
	data, err := json.Marshal(RegisterRequest{Username: "alice", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "confirm")
	assert.Contains(t, string(data), `"username":"alice"`)
}

func TestValidateOTP(t *testing.T) {
	assert.NoError(t, ValidateOTP("123456"))
	assert.NoError(t, ValidateOTP(" 000000 "))
	for _, bad := range []string{"", "12345", "1234567", "12a456"} {
		err := ValidateOTP(bad)
		require.Error(t, err, bad)
		assert.Equal(t, MsgIncompleteOTP, err.Error())
	}
}

func TestTransactionInputValidate(t *testing.T) {
	good := TransactionInput{
		CategoryID:  3,
		Type:        Expense,
		Amount:      Money{Cents: 1250},
		Date:        NewDate(2025, 3, 14),
		Description: "groceries",
	}
	require.NoError(t, good.Validate())

	missingCategory := good
	missingCategory.CategoryID = 0
	var fe FieldErrors
	require.True(t, errors.As(missingCategory.Validate(), &fe))
	assert.Equal(t, MsgSelectCategory, fe["categoryId"])

	bad := TransactionInput{Description: strings.Repeat("x", 1001)}
	require.True(t, errors.As(bad.Validate(), &fe))
	assert.Len(t, fe, 5)
}

func TestCategoryInputValidate(t *testing.T) {
	require.NoError(t, CategoryInput{Name: "Food", Type: Expense}.Validate())

	var fe FieldErrors
	require.True(t, errors.As(CategoryInput{Name: " ", Type: "OTHER"}.Validate(), &fe))
	assert.Equal(t, "Category name is required", fe["name"])
	assert.Contains(t, fe, "type")

	require.True(t, errors.As(CategoryInput{Name: strings.Repeat("n", 51), Type: Income, Description: strings.Repeat("d", 501)}.Validate(), &fe))
	assert.Equal(t, "Category name cannot exceed 50 characters", fe["name"])
	assert.Equal(t, "Description cannot exceed 500 characters", fe["description"])
}

func TestProfileUpdateJSONEncodesNulls(t *testing.T) {
	city := "Pune"
	data, err := json.Marshal(ProfileUpdate{Firstname: "A", Lastname: "B", Email: "a@x.com", City: &city})
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstname":"A","middlename":null,"lastname":"B","email":"a@x.com",
		"phoneNumber":null,"street":null,"city":"Pune","state":null,"country":null}`, string(data))
}

func TestParseTransactionType(t *testing.T) {
	got, err := ParseTransactionType(" income ")
	require.NoError(t, err)
	assert.Equal(t, Income, got)

	got, err = ParseTransactionType("")
	require.NoError(t, err)
	assert.Equal(t, TransactionType(""), got)

	_, err = ParseTransactionType("transfer")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestTransactionFilterQuery(t *testing.T) {
	f := TransactionFilter{
		Range:      DateRange{Start: NewDate(2025, 1, 1), End: NewDate(2025, 1, 31)},
		Type:       Expense,
		CategoryID: 7,
	}
	assert.Equal(t, map[string]string{
		"startDate":  "2025-01-01",
		"endDate":    "2025-01-31",
		"type":       "EXPENSE",
		"categoryId": "7",
	}, f.Query())
	assert.Empty(t, TransactionFilter{}.Query())
}

func TestTransactionDecodesBackendPayload(t *testing.T) {
	payload := `{"id":11,"type":"EXPENSE","amount":249.90,"date":"2025-02-03","description":"Cinema",
		"categoryId":4,"categoryName":"Fun","createdAt":"2025-02-03T19:22:10.123456","updatedAt":null}`
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(payload), &tx))
	assert.Equal(t, int64(24990), tx.Amount.Cents)
	assert.Equal(t, "2025-02-03", tx.Date.String())
	assert.Equal(t, 19, tx.CreatedAt.Hour())
	assert.True(t, tx.UpdatedAt.IsZero())
}

func TestDateRanges(t *testing.T) {
	now := time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)

	r := LastDays(now, 30)
	assert.Equal(t, "2025-03-02", r.Start.String())
	assert.Equal(t, "2025-03-31", r.End.String())

	r = LastMonths(now, 5)
	assert.Equal(t, "2024-10-31", r.Start.String())
	assert.NoError(t, r.Validate())

	assert.Error(t, DateRange{Start: NewDate(2025, 2, 1), End: NewDate(2025, 1, 1)}.Validate())
}
