package billing

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stockpos/internal/core/apperror"
	"stockpos/internal/domain/users"
	"stockpos/pkg/logger"
)

// ResolverConfig holds walk-in resolver configuration.
type ResolverConfig struct {
	// ClientRoleName is the role assigned to auto-registered buyers,
	// resolved by name rather than a fixed id
	ClientRoleName string
}

// DefaultResolverConfig returns default resolver configuration.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{ClientRoleName: "Client"}
}

// Resolver guarantees a buyer account exists for a checkout
// identified by national document number, registering a walk-in
// customer when none does.
type Resolver struct {
	userRepo users.Repository
	roleRepo users.RoleRepository
	config   ResolverConfig
}

// NewResolver creates a walk-in customer resolver.
func NewResolver(userRepo users.Repository, roleRepo users.RoleRepository, config ResolverConfig) *Resolver {
	return &Resolver{
		userRepo: userRepo,
		roleRepo: roleRepo,
		config:   config,
	}
}

// ResolveBuyer finds the user holding the given document, or creates
// one. The document lookup includes soft-deleted accounts: a returning
// customer whose account was deactivated still maps to the same
// identity and billing history. For a new account the username and
// initial password are both the document number, a point-of-sale
// convenience for anonymous buyers.
//
// Returns the user and whether it was created by this call.
func (r *Resolver) ResolveBuyer(ctx context.Context, info BuyerInfo) (*users.User, bool, error) {
	if info.Document == "" {
		return nil, false, apperror.NewValidation("document is required").
			WithDetail("field", "document")
	}

	existing, err := r.userRepo.FindByDocument(ctx, info.Document)
	if err == nil {
		return existing, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, err
	}

	role, err := r.roleRepo.FindByName(ctx, r.config.ClientRoleName)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, false, apperror.NewInternal(fmt.Errorf("client role %q is not provisioned: %w", r.config.ClientRoleName, err))
		}
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(info.Document), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, apperror.NewInternal(fmt.Errorf("hash password: %w", err))
	}

	buyer := users.NewUser(info.Document, info.Document, role.ID)
	buyer.PasswordHash = string(hash)
	buyer.FirstName = info.FirstName
	buyer.LastName = info.LastName
	buyer.Email = info.Email
	buyer.Address = info.Address
	buyer.PhoneNumber = info.PhoneNumber

	if err := buyer.Validate(ctx); err != nil {
		return nil, false, err
	}

	if err := r.userRepo.Create(ctx, buyer); err != nil {
		return nil, false, err
	}

	logger.Info(ctx, "walk-in customer registered",
		"document", info.Document,
		"user_id", buyer.ID.String(),
	)

	return buyer, true, nil
}
