package users

import (
	"context"

	"stockpos/internal/core/id"
	"stockpos/internal/domain"
)

// Repository defines the interface for User persistence.
type Repository interface {
	domain.CatalogRepository[*User]

	// FindByUsername retrieves a non-deleted user by username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByUsernameIncludingDeleted retrieves a user by username
	// regardless of deletion state. A deactivated account still owns
	// its username, so uniqueness checks go through this lookup.
	FindByUsernameIncludingDeleted(ctx context.Context, username string) (*User, error)

	// FindByDocument retrieves a user by identity document. Soft-deleted
	// users are included: a returning walk-in customer whose account was
	// deactivated still resolves to the same account at checkout.
	FindByDocument(ctx context.Context, document string) (*User, error)

	// CountActiveByRole counts non-deleted users holding a role.
	CountActiveByRole(ctx context.Context, roleID id.ID) (int64, error)
}

// RoleRepository defines the interface for Role persistence.
type RoleRepository interface {
	domain.CatalogRepository[*Role]

	// FindByName retrieves a non-deleted role by its exact name.
	FindByName(ctx context.Context, name string) (*Role, error)
}
