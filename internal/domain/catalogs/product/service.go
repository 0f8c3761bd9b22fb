package product

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/core/tx"
	"stockpos/internal/domain"
)

// RefChecker reports whether a referenced catalog entry exists and is
// not deleted. Satisfied by the category and unit services.
type RefChecker interface {
	Exists(ctx context.Context, entityID id.ID) (bool, error)
}

// InventoryCounter reports whether a product has a stock ledger row.
// Implemented by the stock repository; used for delete protection.
type InventoryCounter interface {
	CountByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo        Repository
	categories  RefChecker
	units       RefChecker
	inventories InventoryCounter
}

// NewService creates a new Product service.
func NewService(repo Repository, categories, units RefChecker, inventories InventoryCounter, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		categories:     categories,
		units:          units,
		inventories:    inventories,
	}

	base.Hooks().OnBeforeCreate(svc.checkReferences)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)
	base.Hooks().OnBeforeDelete(svc.checkNoInventory)

	return svc
}

// Dangling references are a validation failure, not a conflict: the
// client supplied an id that does not name a live catalog entry.
func (s *Service) checkReferences(ctx context.Context, p *Product) error {
	ok, err := s.categories.Exists(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("category does not exist").
			WithDetail("category_id", p.CategoryID.String())
	}

	ok, err = s.units.Exists(ctx, p.UnitID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("unit does not exist").
			WithDetail("unit_id", p.UnitID.String())
	}
	return nil
}

func (s *Service) checkNoInventory(ctx context.Context, p *Product) error {
	count, err := s.inventories.CountByProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflict("product has stock ledger records").
			WithDetail("product_id", p.ID.String())
	}
	return nil
}
