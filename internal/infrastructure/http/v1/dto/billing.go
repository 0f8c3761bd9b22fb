package dto

import (
	"time"

	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
	"stockpos/internal/domain/billing"
)

// CartLineRequest is one product and quantity in a checkout cart.
type CartLineRequest struct {
	ProductID id.ID `json:"product_id" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required"`
}

// CheckoutRequest is the request body for a checkout. The buyer block
// identifies a walk-in customer by document; an account is created on
// the fly when none exists.
type CheckoutRequest struct {
	Buyer struct {
		Document    string  `json:"document" binding:"required"`
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		Email       *string `json:"email" binding:"omitempty,email"`
		Address     *string `json:"address"`
		PhoneNumber *string `json:"phone_number"`
	} `json:"buyer" binding:"required"`
	Cart []CartLineRequest `json:"cart" binding:"required"`
}

// ToBuyerInfo converts the buyer block to domain input.
func (r *CheckoutRequest) ToBuyerInfo() billing.BuyerInfo {
	return billing.BuyerInfo{
		Document:    r.Buyer.Document,
		FirstName:   r.Buyer.FirstName,
		LastName:    r.Buyer.LastName,
		Email:       r.Buyer.Email,
		Address:     r.Buyer.Address,
		PhoneNumber: r.Buyer.PhoneNumber,
	}
}

// ToCart converts cart lines to domain input.
func (r *CheckoutRequest) ToCart() []billing.CartLine {
	cart := make([]billing.CartLine, 0, len(r.Cart))
	for _, line := range r.Cart {
		cart = append(cart, billing.CartLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return cart
}

// BillDetailResponse is one line of a bill.
type BillDetailResponse struct {
	ID          id.ID       `json:"id"`
	InventoryID id.ID       `json:"inventory_id"`
	Quantity    int64       `json:"quantity"`
	PriceUnit   types.Money `json:"price_unit"`
	Subtotal    types.Money `json:"subtotal"`
}

// FromDetail creates response DTO from a bill detail.
func FromDetail(d *billing.Detail) *BillDetailResponse {
	return &BillDetailResponse{
		ID:          d.ID,
		InventoryID: d.InventoryID,
		Quantity:    d.Quantity,
		PriceUnit:   d.PriceUnit,
		Subtotal:    d.Subtotal,
	}
}

// BillResponse is the response body for a bill header.
type BillResponse struct {
	ID         id.ID       `json:"id"`
	UserID     id.ID       `json:"user_id"`
	TotalPrice types.Money `json:"total_price"`
	Date       time.Time   `json:"date"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FromBill creates response DTO from a bill.
func FromBill(b *billing.Bill) *BillResponse {
	return &BillResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		TotalPrice: b.TotalPrice,
		Date:       b.Date,
		CreatedAt:  b.CreatedAt,
	}
}

// BillWithDetailsResponse is a bill header with its lines.
type BillWithDetailsResponse struct {
	Bill    *BillResponse         `json:"bill"`
	Details []*BillDetailResponse `json:"details"`
}

// CheckoutResponse is returned after a successful checkout.
type CheckoutResponse struct {
	Bill         *BillResponse         `json:"bill"`
	Details      []*BillDetailResponse `json:"details"`
	BuyerID      id.ID                 `json:"buyer_id"`
	BuyerCreated bool                  `json:"buyer_created"`
	Warnings     []string              `json:"warnings,omitempty"`
}

// FromCheckoutResult creates response DTO from a checkout result.
func FromCheckoutResult(res *billing.CheckoutResult) *CheckoutResponse {
	details := make([]*BillDetailResponse, 0, len(res.Details))
	for _, d := range res.Details {
		details = append(details, FromDetail(d))
	}
	return &CheckoutResponse{
		Bill:         FromBill(res.Bill),
		Details:      details,
		BuyerID:      res.BuyerID,
		BuyerCreated: res.BuyerCreated,
		Warnings:     res.Warnings,
	}
}
