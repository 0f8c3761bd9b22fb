// Package category provides the product category catalog.
package category

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/entity"
)

// Category groups products for navigation and reporting.
type Category struct {
	entity.Base

	// Name is the display name (unique among active categories)
	Name string `db:"name" json:"name"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(name string) *Category {
	return &Category{
		Base: entity.NewBase(),
		Name: name,
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
