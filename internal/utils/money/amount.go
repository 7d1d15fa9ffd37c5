// Package money holds the fixed-point amount handling shared by all ledger
// operations. Every caller-supplied amount passes through ParseAmount so that
// arithmetic downstream never touches binary floating point.
package money

import (
	"fmt"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a caller-supplied amount string into a Decimal with at
// most two fraction digits. It fails with ErrInvalidAmount when the input is
// unparsable, carries sub-cent precision, or is not strictly positive.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, raw)
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than two fraction digits", apperrors.ErrInvalidAmount, raw)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive, got %q", apperrors.ErrInvalidAmount, raw)
	}
	return amount.Round(2), nil
}

// MustParse is a test helper for amounts known to be valid.
func MustParse(raw string) decimal.Decimal {
	amount, err := ParseAmount(raw)
	if err != nil {
		panic(err)
	}
	return amount
}
