// Package stock implements the stock ledger: per-product on-hand
// quantity, valuation, and the append-only movement trail.
package stock

import (
	"context"
	"time"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/entity"
	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
)

// DefaultMinQuantity is assigned when an inventory row is created
// lazily by the first intake of a product.
const DefaultMinQuantity int64 = 5

// Inventory is the ledger row for one product. At most one active row
// exists per product; the ledger's find-or-create path enforces this.
type Inventory struct {
	entity.Base

	// ProductID references the product (one row per product)
	ProductID id.ID `db:"product_id" json:"product_id"`

	// Quantity is the on-hand count, never negative
	Quantity int64 `db:"quantity" json:"quantity"`

	// TotalPrice is quantity times the current product price,
	// recomputed on every mutation
	TotalPrice types.Money `db:"total_price" json:"total_price"`

	// MinQuantity is the low-stock advisory threshold
	MinQuantity int64 `db:"min_quantity" json:"min_quantity"`
}

// Validate implements entity.Validatable.
func (i *Inventory) Validate(ctx context.Context) error {
	if id.IsNil(i.ProductID) {
		return apperror.NewValidation("product_id is required").
			WithDetail("field", "product_id")
	}
	if i.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if i.MinQuantity < 0 {
		return apperror.NewValidation("min_quantity cannot be negative").
			WithDetail("field", "min_quantity")
	}
	return nil
}

// Input is an immutable intake record. Never updated or reversed.
type Input struct {
	ID          id.ID     `db:"id" json:"id"`
	InventoryID id.ID     `db:"inventory_id" json:"inventory_id"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NewInput creates an intake movement record.
func NewInput(inventoryID id.ID, quantity int64) *Input {
	return &Input{
		ID:          id.New(),
		InventoryID: inventoryID,
		Quantity:    quantity,
		CreatedAt:   time.Now().UTC(),
	}
}

// Output is an immutable deduction record, one per checkout line.
type Output struct {
	ID          id.ID     `db:"id" json:"id"`
	InventoryID id.ID     `db:"inventory_id" json:"inventory_id"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NewOutput creates a deduction movement record.
func NewOutput(inventoryID id.ID, quantity int64) *Output {
	return &Output{
		ID:          id.New(),
		InventoryID: inventoryID,
		Quantity:    quantity,
		CreatedAt:   time.Now().UTC(),
	}
}
