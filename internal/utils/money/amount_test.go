package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/opentreso/treasury_app/internal/apperrors"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "integer", input: "100", expected: "100"},
		{name: "two fraction digits", input: "99.99", expected: "99.99"},
		{name: "one fraction digit", input: "0.5", expected: "0.5"},
		{name: "trailing zeros", input: "10.00", expected: "10"},
		{name: "sub-cent precision", input: "10.001", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "not a number", input: "ten dirhams", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseAmount(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tc.expected)), "got %s, want %s", amount, tc.expected)
		})
	}
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("-1") })
	assert.NotPanics(t, func() { MustParse("1250.75") })
}
