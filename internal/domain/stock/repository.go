package stock

import (
	"context"

	"stockpos/internal/core/id"
	"stockpos/internal/domain"
)

// Repository defines the interface for stock ledger persistence.
type Repository interface {
	// GetByProduct retrieves the inventory row for a product.
	GetByProduct(ctx context.Context, productID id.ID) (*Inventory, error)

	// GetByProductForUpdate retrieves the inventory row for a product
	// with a row lock held for the rest of the current transaction.
	// Callers outside a transaction get a plain read.
	GetByProductForUpdate(ctx context.Context, productID id.ID) (*Inventory, error)

	// Create inserts a new inventory row.
	Create(ctx context.Context, inv *Inventory) error

	// Update persists quantity, total price and threshold changes,
	// guarded by optimistic version check.
	Update(ctx context.Context, inv *Inventory) error

	// CountByProduct counts inventory rows for a product.
	CountByProduct(ctx context.Context, productID id.ID) (int64, error)

	// List returns inventory rows page by page.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Inventory], error)

	// AddInput appends an intake movement record.
	AddInput(ctx context.Context, in *Input) error

	// AddOutput appends a deduction movement record.
	AddOutput(ctx context.Context, out *Output) error

	// ListInputs returns intake records for an inventory row, newest first.
	ListInputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Input], error)

	// ListOutputs returns deduction records for an inventory row, newest first.
	ListOutputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Output], error)
}
