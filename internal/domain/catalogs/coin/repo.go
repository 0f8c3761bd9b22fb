package coin

import (
	"context"

	"stockpos/internal/domain"
)

// Repository defines the interface for Coin persistence.
type Repository interface {
	domain.CatalogRepository[*Coin]

	// FindByName retrieves a non-deleted coin by its exact name.
	FindByName(ctx context.Context, name string) (*Coin, error)
}
