// Package users provides user and role management.
package users

import (
	"context"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/entity"
	"stockpos/internal/core/id"
)

// Role is a named authorization group.
type Role struct {
	entity.Base

	Name string `db:"name" json:"name"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewRole creates a new Role.
func NewRole(name string) *Role {
	return &Role{
		Base: entity.NewBase(),
		Name: name,
	}
}

// Validate implements entity.Validatable.
func (r *Role) Validate(ctx context.Context) error {
	if r.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// User is a system account. Walk-in customers are created on the fly
// at checkout with the username and password both set from the
// identity document; staff accounts are registered explicitly.
type User struct {
	entity.Base

	Username string `db:"username" json:"username"`

	// PasswordHash is the bcrypt hash, never serialized
	PasswordHash string `db:"password_hash" json:"-"`

	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`

	// Document is the national identity document number
	Document string `db:"document" json:"document"`

	Email       *string `db:"email" json:"email,omitempty"`
	Address     *string `db:"address" json:"address,omitempty"`
	PhoneNumber *string `db:"phone_number" json:"phone_number,omitempty"`

	// RoleID references the user's role
	RoleID id.ID `db:"role_id" json:"role_id"`
}

// NewUser creates a new User with required fields.
func NewUser(username, document string, roleID id.ID) *User {
	return &User{
		Base:     entity.NewBase(),
		Username: username,
		Document: document,
		RoleID:   roleID,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").
			WithDetail("field", "username")
	}
	if u.Document == "" {
		return apperror.NewValidation("document is required").
			WithDetail("field", "document")
	}
	if id.IsNil(u.RoleID) {
		return apperror.NewValidation("role_id is required").
			WithDetail("field", "role_id")
	}
	return nil
}
