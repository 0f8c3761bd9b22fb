package category

import (
	"context"

	"stockpos/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]

	// FindByName retrieves a non-deleted category by its exact name.
	FindByName(ctx context.Context, name string) (*Category, error)
}
