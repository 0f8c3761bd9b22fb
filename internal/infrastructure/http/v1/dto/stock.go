package dto

import (
	"time"

	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
	"stockpos/internal/domain/stock"
)

// IntakeRequest is the request body for registering incoming stock.
type IntakeRequest struct {
	ProductID id.ID `json:"product_id" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required"`
}

// SetMinimumRequest is the request body for configuring the minimum
// stock threshold of a product.
type SetMinimumRequest struct {
	ProductID   id.ID `json:"product_id" binding:"required"`
	MinQuantity int64 `json:"min_quantity"`
}

// InventoryResponse is the response body for a stock ledger row.
type InventoryResponse struct {
	BaseResponse
	ProductID   id.ID       `json:"product_id"`
	Quantity    int64       `json:"quantity"`
	TotalPrice  types.Money `json:"total_price"`
	MinQuantity int64       `json:"min_quantity"`
}

// FromInventory creates response DTO from domain entity.
func FromInventory(inv *stock.Inventory) *InventoryResponse {
	return &InventoryResponse{
		BaseResponse: FromBase(inv.Base),
		ProductID:    inv.ProductID,
		Quantity:     inv.Quantity,
		TotalPrice:   inv.TotalPrice,
		MinQuantity:  inv.MinQuantity,
	}
}

// IntakeResponse is returned after an intake operation.
type IntakeResponse struct {
	Outcome   string             `json:"outcome"`
	Inventory *InventoryResponse `json:"inventory"`
	Warning   string             `json:"warning,omitempty"`
}

// FromIntakeResult creates response DTO from an intake result.
func FromIntakeResult(res *stock.IntakeResult) *IntakeResponse {
	return &IntakeResponse{
		Outcome:   string(res.Outcome),
		Inventory: FromInventory(res.Inventory),
		Warning:   res.Warning,
	}
}

// MovementResponse is the response body for a single input or output
// movement.
type MovementResponse struct {
	ID          id.ID     `json:"id"`
	InventoryID id.ID     `json:"inventory_id"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromInput creates response DTO from an input movement.
func FromInput(in *stock.Input) *MovementResponse {
	return &MovementResponse{
		ID:          in.ID,
		InventoryID: in.InventoryID,
		Quantity:    in.Quantity,
		CreatedAt:   in.CreatedAt,
	}
}

// FromOutput creates response DTO from an output movement.
func FromOutput(out *stock.Output) *MovementResponse {
	return &MovementResponse{
		ID:          out.ID,
		InventoryID: out.InventoryID,
		Quantity:    out.Quantity,
		CreatedAt:   out.CreatedAt,
	}
}
