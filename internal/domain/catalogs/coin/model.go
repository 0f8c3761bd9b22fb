// Package coin provides the currency catalog.
package coin

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/entity"
)

// Coin represents a currency accepted at the point of sale.
type Coin struct {
	entity.Base

	// Name is the display name (unique among active coins)
	Name string `db:"name" json:"name"`

	// Symbol is the currency sign (e.g. "$")
	Symbol string `db:"symbol" json:"symbol"`

	// Abbreviation is the short code (e.g. "USD")
	Abbreviation string `db:"abbreviation" json:"abbreviation"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCoin creates a new Coin with required fields.
func NewCoin(name, symbol, abbreviation string) *Coin {
	return &Coin{
		Base:         entity.NewBase(),
		Name:         name,
		Symbol:       symbol,
		Abbreviation: abbreviation,
	}
}

// Validate implements entity.Validatable.
func (c *Coin) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.Symbol == "" {
		return apperror.NewValidation("symbol is required").
			WithDetail("field", "symbol")
	}
	if c.Abbreviation == "" {
		return apperror.NewValidation("abbreviation is required").
			WithDetail("field", "abbreviation")
	}
	return nil
}
