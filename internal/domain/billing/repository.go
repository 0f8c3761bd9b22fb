package billing

import (
	"context"

	"stockpos/internal/core/id"
	"stockpos/internal/domain"
)

// Repository defines the interface for billing persistence.
// Bills and details are write-once; there are no update operations.
type Repository interface {
	// CreateBill inserts an invoice header.
	CreateBill(ctx context.Context, bill *Bill) error

	// CreateDetails inserts all line items of a bill.
	CreateDetails(ctx context.Context, details []*Detail) error

	// GetBill retrieves an invoice header by id.
	GetBill(ctx context.Context, billID id.ID) (*Bill, error)

	// ListBills returns invoice headers, newest first.
	ListBills(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Bill], error)

	// ListDetails returns the line items of a bill in insertion order.
	ListDetails(ctx context.Context, billID id.ID) ([]*Detail, error)

	// CountByUser counts bills belonging to a buyer.
	CountByUser(ctx context.Context, userID id.ID) (int64, error)
}
