package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/tx"
	"stockpos/internal/domain/users"
	"stockpos/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int

	// DefaultRoleName is the role assigned on self-registration.
	// Self-registered accounts are customers, so this matches the
	// role auto-created walk-in buyers receive at checkout.
	DefaultRoleName string
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
		DefaultRoleName:   "Client",
	}
}

// TokenPair is the result of a successful authentication.
type TokenPair struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service provides login and registration.
type Service struct {
	userRepo   users.Repository
	roleRepo   users.RoleRepository
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo users.Repository,
	roleRepo users.RoleRepository,
	txManager tx.Manager,
	jwtService *JWTService,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// Login authenticates by username and password and issues a token.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same error for unknown user and wrong password.
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	role, err := s.roleRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID.String(), user.Username, role.Name)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("generate token: %w", err))
	}

	logger.Info(ctx, "user logged in", "username", user.Username, "role", role.Name)

	return &TokenPair{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// RegisterInput holds self-registration fields.
type RegisterInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Document    string
	Email       *string
	Address     *string
	PhoneNumber *string
}

// Register creates a new account with the default role.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*users.User, error) {
	if len(in.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation("password is too short").
			WithDetail("min_length", s.config.PasswordMinLength)
	}

	role, err := s.roleRepo.FindByName(ctx, s.config.DefaultRoleName)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewInternal(fmt.Errorf("default role %q is not provisioned: %w", s.config.DefaultRoleName, err))
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hash password: %w", err))
	}

	user := users.NewUser(in.Username, in.Document, role.ID)
	user.PasswordHash = string(hash)
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	user.Address = in.Address
	user.PhoneNumber = in.PhoneNumber

	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if existing, err := s.userRepo.FindByUsernameIncludingDeleted(ctx, in.Username); err == nil && existing != nil {
			return apperror.NewDuplicate("user", "username", in.Username)
		} else if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing, err := s.userRepo.FindByDocument(ctx, in.Document); err == nil && existing != nil {
			return apperror.NewDuplicate("user", "document", in.Document)
		} else if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "username", user.Username, "role", role.Name)

	return user, nil
}
