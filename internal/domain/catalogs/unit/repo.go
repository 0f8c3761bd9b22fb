package unit

import (
	"context"

	"stockpos/internal/domain"
)

// Repository defines the interface for Unit persistence.
type Repository interface {
	domain.CatalogRepository[*Unit]

	// FindByName retrieves a non-deleted unit by its exact name.
	FindByName(ctx context.Context, name string) (*Unit, error)
}
