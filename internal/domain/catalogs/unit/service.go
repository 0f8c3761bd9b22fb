package unit

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/core/tx"
	"stockpos/internal/domain"
)

// ProductCounter reports how many active products reference a unit.
type ProductCounter interface {
	CountActiveByUnit(ctx context.Context, unitID id.ID) (int64, error)
}

// Service provides business logic for the Unit catalog.
type Service struct {
	*domain.CatalogService[*Unit]
	repo     Repository
	products ProductCounter
}

// NewService creates a new Unit service.
func NewService(repo Repository, products ProductCounter, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Unit]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "unit",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		products:       products,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)
	base.Hooks().OnBeforeDelete(svc.checkNoProducts)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, u *Unit) error {
	existing, err := s.repo.FindByName(ctx, u.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != u.ID {
		return apperror.NewDuplicate("unit", "name", u.Name)
	}
	return nil
}

// A unit referenced by live products cannot be deleted.
func (s *Service) checkNoProducts(ctx context.Context, u *Unit) error {
	count, err := s.products.CountActiveByUnit(ctx, u.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflict("unit is referenced by existing products").
			WithDetail("unit_id", u.ID.String()).
			WithDetail("products", count)
	}
	return nil
}
