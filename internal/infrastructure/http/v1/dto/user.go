package dto

import (
	"stockpos/internal/core/id"
	"stockpos/internal/domain/users"
)

// --- Role ---

// CreateRoleRequest is the request body for creating a role.
type CreateRoleRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateRoleRequest) ToEntity() *users.Role {
	role := users.NewRole(r.Name)
	role.Description = r.Description
	return role
}

// UpdateRoleRequest is the request body for partially updating a role.
type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies present fields to an existing entity.
func (r *UpdateRoleRequest) ApplyTo(role *users.Role) {
	if r.Name != nil {
		role.Name = *r.Name
	}
	if r.Description != nil {
		role.Description = r.Description
	}
	role.Version = r.Version
}

// RoleResponse is the response body for a role.
type RoleResponse struct {
	BaseResponse
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// FromRole creates response DTO from domain entity.
func FromRole(role *users.Role) *RoleResponse {
	return &RoleResponse{
		BaseResponse: FromBase(role.Base),
		Name:         role.Name,
		Description:  role.Description,
	}
}

// --- User ---

// CreateUserRequest is the request body for creating a user through the
// admin catalog endpoint. Password is hashed before storage and never
// returned.
type CreateUserRequest struct {
	Username    string  `json:"username" binding:"required"`
	Password    string  `json:"password" binding:"required,min=8"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Document    string  `json:"document" binding:"required"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	RoleID      id.ID   `json:"role_id" binding:"required"`
}

// ToEntity converts DTO to domain entity. The password hash is set by
// the caller.
func (r *CreateUserRequest) ToEntity() *users.User {
	u := users.NewUser(r.Username, r.Document, r.RoleID)
	u.FirstName = r.FirstName
	u.LastName = r.LastName
	u.Email = r.Email
	u.Address = r.Address
	u.PhoneNumber = r.PhoneNumber
	return u
}

// UpdateUserRequest is the request body for partially updating a user.
// Username, document and password change through dedicated flows, not
// here.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	RoleID      *id.ID  `json:"role_id"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies present fields to an existing entity.
func (r *UpdateUserRequest) ApplyTo(u *users.User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Email != nil {
		u.Email = r.Email
	}
	if r.Address != nil {
		u.Address = r.Address
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = r.PhoneNumber
	}
	if r.RoleID != nil {
		u.RoleID = *r.RoleID
	}
	u.Version = r.Version
}

// UserResponse is the response body for a user. The password hash is
// never serialized.
type UserResponse struct {
	BaseResponse
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Document    string  `json:"document"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	RoleID      id.ID   `json:"role_id"`
}

// FromUser creates response DTO from domain entity.
func FromUser(u *users.User) *UserResponse {
	return &UserResponse{
		BaseResponse: FromBase(u.Base),
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Document:     u.Document,
		Email:        u.Email,
		Address:      u.Address,
		PhoneNumber:  u.PhoneNumber,
		RoleID:       u.RoleID,
	}
}
