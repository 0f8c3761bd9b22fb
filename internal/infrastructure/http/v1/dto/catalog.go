package dto

import (
	"stockpos/internal/domain/catalogs/category"
	"stockpos/internal/domain/catalogs/coin"
	"stockpos/internal/domain/catalogs/unit"
)

// --- Category ---

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	c := category.NewCategory(r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest is the request body for partially updating a
// category. Only fields present in the body are applied.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies present fields to an existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = r.Description
	}
	c.Version = r.Version
}

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	BaseResponse
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// FromCategory creates response DTO from domain entity.
func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		BaseResponse: FromBase(c.Base),
		Name:         c.Name,
		Description:  c.Description,
	}
}

// --- Unit ---

// CreateUnitRequest is the request body for creating a unit.
type CreateUnitRequest struct {
	Name         string  `json:"name" binding:"required"`
	Abbreviation string  `json:"abbreviation" binding:"required"`
	Description  *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateUnitRequest) ToEntity() *unit.Unit {
	u := unit.NewUnit(r.Name, r.Abbreviation)
	u.Description = r.Description
	return u
}

// UpdateUnitRequest is the request body for partially updating a unit.
type UpdateUnitRequest struct {
	Name         *string `json:"name"`
	Abbreviation *string `json:"abbreviation"`
	Description  *string `json:"description"`
	Version      int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies present fields to an existing entity.
func (r *UpdateUnitRequest) ApplyTo(u *unit.Unit) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Abbreviation != nil {
		u.Abbreviation = *r.Abbreviation
	}
	if r.Description != nil {
		u.Description = r.Description
	}
	u.Version = r.Version
}

// UnitResponse is the response body for a unit.
type UnitResponse struct {
	BaseResponse
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Description  *string `json:"description,omitempty"`
}

// FromUnit creates response DTO from domain entity.
func FromUnit(u *unit.Unit) *UnitResponse {
	return &UnitResponse{
		BaseResponse: FromBase(u.Base),
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
		Description:  u.Description,
	}
}

// --- Coin ---

// CreateCoinRequest is the request body for creating a coin.
type CreateCoinRequest struct {
	Name         string  `json:"name" binding:"required"`
	Symbol       string  `json:"symbol" binding:"required"`
	Abbreviation string  `json:"abbreviation" binding:"required"`
	Description  *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCoinRequest) ToEntity() *coin.Coin {
	c := coin.NewCoin(r.Name, r.Symbol, r.Abbreviation)
	c.Description = r.Description
	return c
}

// UpdateCoinRequest is the request body for partially updating a coin.
type UpdateCoinRequest struct {
	Name         *string `json:"name"`
	Symbol       *string `json:"symbol"`
	Abbreviation *string `json:"abbreviation"`
	Description  *string `json:"description"`
	Version      int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies present fields to an existing entity.
func (r *UpdateCoinRequest) ApplyTo(c *coin.Coin) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Symbol != nil {
		c.Symbol = *r.Symbol
	}
	if r.Abbreviation != nil {
		c.Abbreviation = *r.Abbreviation
	}
	if r.Description != nil {
		c.Description = r.Description
	}
	c.Version = r.Version
}

// CoinResponse is the response body for a coin.
type CoinResponse struct {
	BaseResponse
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Abbreviation string  `json:"abbreviation"`
	Description  *string `json:"description,omitempty"`
}

// FromCoin creates response DTO from domain entity.
func FromCoin(c *coin.Coin) *CoinResponse {
	return &CoinResponse{
		BaseResponse: FromBase(c.Base),
		Name:         c.Name,
		Symbol:       c.Symbol,
		Abbreviation: c.Abbreviation,
		Description:  c.Description,
	}
}
