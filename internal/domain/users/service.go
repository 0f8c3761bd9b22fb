package users

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/core/tx"
	"stockpos/internal/domain"
)

// BillCounter reports how many bills belong to a user.
// Implemented by the billing repository; used for delete protection.
type BillCounter interface {
	CountByUser(ctx context.Context, userID id.ID) (int64, error)
}

// Service provides business logic for user administration.
type Service struct {
	*domain.CatalogService[*User]
	repo  Repository
	roles RoleRepository
	bills BillCounter
}

// NewService creates a new User service.
func NewService(repo Repository, roles RoleRepository, bills BillCounter, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*User]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "user",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		roles:          roles,
		bills:          bills,
	}

	base.Hooks().OnBeforeCreate(svc.checkUnique)
	base.Hooks().OnBeforeCreate(svc.checkRole)
	base.Hooks().OnBeforeUpdate(svc.checkUnique)
	base.Hooks().OnBeforeUpdate(svc.checkRole)
	base.Hooks().OnBeforeDelete(svc.checkNoBills)

	return svc
}

// Username and document stay reserved by soft-deleted accounts, so
// both lookups ignore the deletion filter.
func (s *Service) checkUnique(ctx context.Context, u *User) error {
	existing, err := s.repo.FindByUsernameIncludingDeleted(ctx, u.Username)
	if err == nil && existing.ID != u.ID {
		return apperror.NewDuplicate("user", "username", u.Username)
	}
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	existing, err = s.repo.FindByDocument(ctx, u.Document)
	if err == nil && existing.ID != u.ID {
		return apperror.NewDuplicate("user", "document", u.Document)
	}
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	return nil
}

func (s *Service) checkRole(ctx context.Context, u *User) error {
	ok, err := s.roles.Exists(ctx, u.RoleID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("role does not exist").
			WithDetail("role_id", u.RoleID.String())
	}
	return nil
}

// Accounts with billing history are kept for audit; deactivation only.
func (s *Service) checkNoBills(ctx context.Context, u *User) error {
	count, err := s.bills.CountByUser(ctx, u.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflict("user has billing history").
			WithDetail("user_id", u.ID.String()).
			WithDetail("bills", count)
	}
	return nil
}

// RoleService provides business logic for the Role catalog.
type RoleService struct {
	*domain.CatalogService[*Role]
	repo  RoleRepository
	users Repository
}

// NewRoleService creates a new Role service.
func NewRoleService(repo RoleRepository, userRepo Repository, txManager tx.Manager) *RoleService {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Role]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "role",
	})

	svc := &RoleService{
		CatalogService: base,
		repo:           repo,
		users:          userRepo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)
	base.Hooks().OnBeforeDelete(svc.checkNoUsers)

	return svc
}

func (s *RoleService) checkNameUnique(ctx context.Context, r *Role) error {
	existing, err := s.repo.FindByName(ctx, r.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != r.ID {
		return apperror.NewDuplicate("role", "name", r.Name)
	}
	return nil
}

func (s *RoleService) checkNoUsers(ctx context.Context, r *Role) error {
	count, err := s.users.CountActiveByRole(ctx, r.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflict("role is assigned to existing users").
			WithDetail("role_id", r.ID.String()).
			WithDetail("users", count)
	}
	return nil
}
