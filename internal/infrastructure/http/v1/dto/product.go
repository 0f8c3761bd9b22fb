package dto

import (
	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
	"stockpos/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product.
// Price accepts a decimal number or a quoted decimal string.
type CreateProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Price       types.Money `json:"price" binding:"required"`
	CategoryID  id.ID       `json:"category_id" binding:"required"`
	UnitID      id.ID       `json:"unit_id" binding:"required"`
	Description *string     `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Name, r.Price, r.CategoryID, r.UnitID)
	p.Description = r.Description
	return p
}

// UpdateProductRequest is the request body for partially updating a
// product. Only fields present in the body are applied.
type UpdateProductRequest struct {
	Name        *string      `json:"name"`
	Price       *types.Money `json:"price"`
	CategoryID  *id.ID       `json:"category_id"`
	UnitID      *id.ID       `json:"unit_id"`
	Description *string      `json:"description"`
	Version     int          `json:"version" binding:"required,min=1"`
}

// ApplyTo applies present fields to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	if r.UnitID != nil {
		p.UnitID = *r.UnitID
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	p.Version = r.Version
}

// ProductResponse is the response body for a product.
type ProductResponse struct {
	BaseResponse
	Name        string      `json:"name"`
	Price       types.Money `json:"price"`
	CategoryID  id.ID       `json:"category_id"`
	UnitID      id.ID       `json:"unit_id"`
	Description *string     `json:"description,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		BaseResponse: FromBase(p.Base),
		Name:         p.Name,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		UnitID:       p.UnitID,
		Description:  p.Description,
	}
}
