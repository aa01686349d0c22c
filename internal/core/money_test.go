package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"integer", `1500`, 150000},
		{"decimal", `12.5`, 1250},
		{"negative", `-3.05`, -305},
		{"zero", `0`, 0},
		{"string", `"99.99"`, 9999},
		{"exponent", `1.5E+3`, 150000},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			require.NoError(t, json.Unmarshal([]byte(tt.in), &m))
			assert.Equal(t, tt.want, m.Cents)
		})
	}

	var m Money
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &m))
}

func TestMoneyMarshalJSON(t *testing.T) {
	payload := struct {
		Amount Money `json:"amount"`
	}{Amount: Money{Cents: 123405}}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":1234.05}`, string(data))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "₹0.00"},
		{5, "₹0.05"},
		{99900, "₹999.00"},
		{100000, "₹1,000.00"},
		{12345678, "₹1,23,456.78"},
		{1234567890, "₹1,23,45,678.90"},
		{-250050, "-₹2,500.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(Money{Cents: tt.cents}), "cents=%d", tt.cents)
	}
}
