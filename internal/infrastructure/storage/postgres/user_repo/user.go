// Package user_repo provides PostgreSQL implementations for user and role repositories.
package user_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain/users"
	"stockpos/internal/infrastructure/storage/postgres"
	"stockpos/internal/infrastructure/storage/postgres/catalog_repo"
)

const userTable = "users"

// UserRepo implements users.Repository.
type UserRepo struct {
	*catalog_repo.BaseCatalogRepo[*users.User]
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo(
			txm,
			userTable,
			postgres.ExtractDBColumns[users.User](),
			func() *users.User { return &users.User{} },
		),
	}
}

// FindByUsername retrieves a non-deleted user by username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.GetOneWhere(ctx, squirrel.Eq{"username": username})
}

// FindByDocument retrieves a user by identity document. Deleted rows
// are deliberately not filtered: a deactivated walk-in account still
// resolves to the same identity at checkout.
func (r *UserRepo) FindByDocument(ctx context.Context, document string) (*users.User, error) {
	return r.findOneAnyState(ctx, squirrel.Eq{"document": document}, document)
}

// FindByUsernameIncludingDeleted retrieves a user by username regardless
// of deletion state. Deactivated accounts keep their username reserved.
func (r *UserRepo) FindByUsernameIncludingDeleted(ctx context.Context, username string) (*users.User, error) {
	return r.findOneAnyState(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) findOneAnyState(ctx context.Context, conds squirrel.Eq, key string) (*users.User, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[users.User]()...).
		From(userTable).
		Where(conds).
		OrderBy("created_at").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u users.User
	if err := pgxscan.Get(ctx, r.Querier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}

// CountActiveByRole counts non-deleted users holding a role.
func (r *UserRepo) CountActiveByRole(ctx context.Context, roleID id.ID) (int64, error) {
	return r.CountWhere(ctx, squirrel.Eq{"role_id": roleID})
}
