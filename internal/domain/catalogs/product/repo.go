package product

import (
	"context"

	"stockpos/internal/core/id"
	"stockpos/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// CountActiveByCategory counts non-deleted products in a category.
	CountActiveByCategory(ctx context.Context, categoryID id.ID) (int64, error)

	// CountActiveByUnit counts non-deleted products measured in a unit.
	CountActiveByUnit(ctx context.Context, unitID id.ID) (int64, error)
}
