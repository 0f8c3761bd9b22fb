package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockpos/internal/domain/catalogs/unit"
	"stockpos/internal/infrastructure/storage/postgres"
)

const unitTable = "cat_units"

// UnitRepo implements unit.Repository.
type UnitRepo struct {
	*BaseCatalogRepo[*unit.Unit]
}

// NewUnitRepo creates a new unit repository.
func NewUnitRepo(txm *postgres.TxManager) *UnitRepo {
	return &UnitRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			unitTable,
			postgres.ExtractDBColumns[unit.Unit](),
			func() *unit.Unit { return &unit.Unit{} },
		),
	}
}

// FindByName retrieves a non-deleted unit by its exact name.
func (r *UnitRepo) FindByName(ctx context.Context, name string) (*unit.Unit, error) {
	return r.GetOneWhere(ctx, squirrel.Eq{"name": name})
}
