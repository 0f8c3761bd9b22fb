// Package billing implements walk-in buyer resolution and the
// checkout flow that turns a cart into a persisted bill.
package billing

import (
	"time"

	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
)

// Bill is an invoice header. Written once at checkout, never mutated.
type Bill struct {
	ID id.ID `db:"id" json:"id"`

	// UserID references the buyer
	UserID id.ID `db:"user_id" json:"user_id"`

	// TotalPrice is the sum of all detail subtotals
	TotalPrice types.Money `db:"total_price" json:"total_price"`

	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Detail is one line item of a bill. PriceUnit is a frozen copy of
// the product price at sale time, so later price changes never alter
// historical invoices.
type Detail struct {
	ID id.ID `db:"id" json:"id"`

	// BillID references the owning bill
	BillID id.ID `db:"bill_id" json:"bill_id"`

	// InventoryID references the ledger row the stock came from
	InventoryID id.ID `db:"inventory_id" json:"inventory_id"`

	Quantity int64 `db:"quantity" json:"quantity"`

	// PriceUnit is the unit price at time of sale
	PriceUnit types.Money `db:"price_unit" json:"price_unit"`

	// Subtotal is quantity times price unit
	Subtotal types.Money `db:"subtotal" json:"subtotal"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CartLine is one requested (product, quantity) pair.
type CartLine struct {
	ProductID id.ID `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// BuyerInfo carries the contact fields used when a walk-in customer
// has to be registered on the fly. Ignored for known buyers.
type BuyerInfo struct {
	Document    string  `json:"document"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// CheckoutResult is the outcome of a committed checkout.
type CheckoutResult struct {
	Bill    *Bill     `json:"bill"`
	Details []*Detail `json:"details"`

	// BuyerID is the resolved or newly created buyer account
	BuyerID id.ID `json:"buyer_id"`

	// BuyerCreated reports whether a walk-in account was registered
	BuyerCreated bool `json:"buyer_created"`

	// Warnings holds every low-stock advisory raised by the cart lines
	Warnings []string `json:"warnings,omitempty"`
}
