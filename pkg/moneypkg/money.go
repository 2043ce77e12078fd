// Package moneypkg provides fixed-point monetary values in currency minor units.
//
// All stored and compared amounts are int64 minor units. Floating point is
// never used for money.
package moneypkg

import (
	"errors"
	"math"
)

// ErrOverflow indicates that an arithmetic operation exceeded int64 range.
var ErrOverflow = errors.New("amount overflow")

// Money is an amount of minor units tagged with its currency.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// New returns the given amount of minor units in the given currency.
func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Add64 adds two minor-unit amounts, failing instead of wrapping on overflow.
func Add64(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrOverflow
	}

	if b < 0 && a < math.MinInt64-b {
		return 0, ErrOverflow
	}

	return a + b, nil
}

// Mul64 multiplies two minor-unit amounts, failing instead of wrapping on overflow.
func Mul64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	product := a * b
	if product/b != a {
		return 0, ErrOverflow
	}

	return product, nil
}
