package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockpos/internal/domain/catalogs/category"
	"stockpos/internal/infrastructure/storage/postgres"
)

const categoryTable = "cat_categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			categoryTable,
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
		),
	}
}

// FindByName retrieves a non-deleted category by its exact name.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*category.Category, error) {
	return r.GetOneWhere(ctx, squirrel.Eq{"name": name})
}
