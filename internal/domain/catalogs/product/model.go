// Package product provides the product catalog.
package product

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/entity"
	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
)

// Product is a sellable item. Price is the current unit price used
// for ledger valuation and for freezing line prices at checkout.
type Product struct {
	entity.Base

	Name string `db:"name" json:"name"`

	// Price is the current unit price
	Price types.Money `db:"price" json:"price"`

	// CategoryID references the product category
	CategoryID id.ID `db:"category_id" json:"category_id"`

	// UnitID references the unit of measure
	UnitID id.ID `db:"unit_id" json:"unit_id"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(name string, price types.Money, categoryID, unitID id.ID) *Product {
	return &Product{
		Base:       entity.NewBase(),
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		UnitID:     unitID,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price").
			WithDetail("value", p.Price.String())
	}
	if id.IsNil(p.CategoryID) {
		return apperror.NewValidation("category_id is required").
			WithDetail("field", "category_id")
	}
	if id.IsNil(p.UnitID) {
		return apperror.NewValidation("unit_id is required").
			WithDetail("field", "unit_id")
	}
	return nil
}
