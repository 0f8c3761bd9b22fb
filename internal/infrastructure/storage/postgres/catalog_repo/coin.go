package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockpos/internal/domain/catalogs/coin"
	"stockpos/internal/infrastructure/storage/postgres"
)

const coinTable = "cat_coins"

// CoinRepo implements coin.Repository.
type CoinRepo struct {
	*BaseCatalogRepo[*coin.Coin]
}

// NewCoinRepo creates a new coin repository.
func NewCoinRepo(txm *postgres.TxManager) *CoinRepo {
	return &CoinRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			coinTable,
			postgres.ExtractDBColumns[coin.Coin](),
			func() *coin.Coin { return &coin.Coin{} },
		),
	}
}

// FindByName retrieves a non-deleted coin by its exact name.
func (r *CoinRepo) FindByName(ctx context.Context, name string) (*coin.Coin, error) {
	return r.GetOneWhere(ctx, squirrel.Eq{"name": name})
}
