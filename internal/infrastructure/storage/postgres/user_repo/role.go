package user_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockpos/internal/domain/users"
	"stockpos/internal/infrastructure/storage/postgres"
	"stockpos/internal/infrastructure/storage/postgres/catalog_repo"
)

const roleTable = "roles"

// RoleRepo implements users.RoleRepository.
type RoleRepo struct {
	*catalog_repo.BaseCatalogRepo[*users.Role]
}

// NewRoleRepo creates a new role repository.
func NewRoleRepo(txm *postgres.TxManager) *RoleRepo {
	return &RoleRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo(
			txm,
			roleTable,
			postgres.ExtractDBColumns[users.Role](),
			func() *users.Role { return &users.Role{} },
		),
	}
}

// FindByName retrieves a non-deleted role by its exact name.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (*users.Role, error) {
	return r.GetOneWhere(ctx, squirrel.Eq{"name": name})
}
