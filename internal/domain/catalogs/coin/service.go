package coin

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/tx"
	"stockpos/internal/domain"
)

// Service provides business logic for the Coin catalog.
type Service struct {
	*domain.CatalogService[*Coin]
	repo Repository
}

// NewService creates a new Coin service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Coin]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "coin",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, c *Coin) error {
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("coin", "name", c.Name)
	}
	return nil
}
