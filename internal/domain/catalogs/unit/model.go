// Package unit provides the unit-of-measure catalog.
// Units describe how a product quantity is counted (gram, liter, dozen).
package unit

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/entity"
)

// Unit represents a measurement unit.
type Unit struct {
	entity.Base

	// Name is the display name (unique among active units)
	Name string `db:"name" json:"name"`

	// Abbreviation is the short form printed on documents (e.g. "kg", "L")
	Abbreviation string `db:"abbreviation" json:"abbreviation"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewUnit creates a new Unit with required fields.
func NewUnit(name, abbreviation string) *Unit {
	return &Unit{
		Base:         entity.NewBase(),
		Name:         name,
		Abbreviation: abbreviation,
	}
}

// Validate implements entity.Validatable.
func (u *Unit) Validate(ctx context.Context) error {
	if u.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if u.Abbreviation == "" {
		return apperror.NewValidation("abbreviation is required").
			WithDetail("field", "abbreviation")
	}
	return nil
}
