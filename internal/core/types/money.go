// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with 2 fraction digits.
// Uses decimal.Decimal to avoid floating-point rounding drift; all
// price arithmetic in the service goes through this type.
type Money = decimal.Decimal

// MoneyPlaces is the number of fraction digits carried by every stored amount.
const MoneyPlaces int32 = 2

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(MoneyPlaces), nil
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MulQuantity multiplies a unit price by an integer quantity,
// rounded to MoneyPlaces.
func MulQuantity(price Money, quantity int64) Money {
	return price.Mul(decimal.NewFromInt(quantity)).Round(MoneyPlaces)
}
