package dto

import (
	"time"

	"stockpos/internal/domain/auth"
)

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the request body for self-registration.
type RegisterRequest struct {
	Username    string  `json:"username" binding:"required"`
	Password    string  `json:"password" binding:"required,min=8"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Document    string  `json:"document" binding:"required"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
}

// ToInput converts DTO to the registration input.
func (r *RegisterRequest) ToInput() auth.RegisterInput {
	return auth.RegisterInput{
		Username:    r.Username,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Document:    r.Document,
		Email:       r.Email,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}

// TokenResponse is returned after a successful login or registration.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// FromTokenPair creates response DTO from a token pair.
func FromTokenPair(pair *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   pair.ExpiresAt,
	}
}
