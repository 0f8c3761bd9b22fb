package category

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/core/tx"
	"stockpos/internal/domain"
)

// ProductCounter reports how many active products reference a category.
// Implemented by the product repository; used for delete protection.
type ProductCounter interface {
	CountActiveByCategory(ctx context.Context, categoryID id.ID) (int64, error)
}

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.CatalogService[*Category]
	repo     Repository
	products ProductCounter
}

// NewService creates a new Category service.
func NewService(repo Repository, products ProductCounter, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "category",
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

func (s *Service) checkNameUnique(ctx context.Context, c *Category) error {
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("category", "name", c.Name)
	}
	return nil
}

// A category referenced by live products cannot be deleted.
func (s *Service) checkNoProducts(ctx context.Context, c *Category) error {
	count, err := s.products.CountActiveByCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflict("category is referenced by existing products").
			WithDetail("category_id", c.ID.String()).
			WithDetail("products", count)
	}
	return nil
}
