package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockpos/internal/core/id"
	"stockpos/internal/domain/catalogs/product"
	"stockpos/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// CountActiveByCategory counts non-deleted products in a category.
func (r *ProductRepo) CountActiveByCategory(ctx context.Context, categoryID id.ID) (int64, error) {
	return r.CountWhere(ctx, squirrel.Eq{"category_id": categoryID})
}

// CountActiveByUnit counts non-deleted products measured in a unit.
func (r *ProductRepo) CountActiveByUnit(ctx context.Context, unitID id.ID) (int64, error) {
	return r.CountWhere(ctx, squirrel.Eq{"unit_id": unitID})
}
