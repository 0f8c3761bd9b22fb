package billing

import (
	"context"
	"sort"
	"time"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/core/tx"
	"stockpos/internal/core/types"
	"stockpos/internal/domain"
	"stockpos/internal/domain/stock"
	"stockpos/pkg/logger"
)

// StockLedger is the slice of the stock service used by checkout.
type StockLedger interface {
	Reserve(ctx context.Context, productID id.ID, quantity int64) (*stock.ReserveResult, error)
}

// Service is the checkout engine. A checkout is a single transaction:
// buyer resolution, every line's deduction, and bill creation either
// all commit or all roll back.
type Service struct {
	repo      Repository
	resolver  *Resolver
	ledger    StockLedger
	txManager tx.Manager
}

// NewService creates a new billing service.
func NewService(repo Repository, resolver *Resolver, ledger StockLedger, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		resolver:  resolver,
		ledger:    ledger,
		txManager: txManager,
	}
}

// Checkout converts a cart into a persisted bill, deducting stock
// per line. Lines are reserved in ascending product id order so
// concurrent checkouts lock inventory rows in the same sequence;
// details are recorded in the order the cart submitted them.
func (s *Service) Checkout(ctx context.Context, buyer BuyerInfo, cart []CartLine) (*CheckoutResult, error) {
	if err := validateCart(cart); err != nil {
		return nil, err
	}

	var result *CheckoutResult
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		user, created, err := s.resolver.ResolveBuyer(ctx, buyer)
		if err != nil {
			return err
		}

		reservations := make(map[int]*stock.ReserveResult, len(cart))
		for _, idx := range lockOrder(cart) {
			line := cart[idx]
			res, err := s.ledger.Reserve(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			reservations[idx] = res
		}

		bill := &Bill{
			ID:        id.New(),
			UserID:    user.ID,
			Date:      time.Now().UTC(),
			CreatedAt: time.Now().UTC(),
		}

		var warnings []string
		details := make([]*Detail, 0, len(cart))
		total := types.Zero()
		for idx, line := range cart {
			res := reservations[idx]
			subtotal := types.MulQuantity(res.UnitPrice, line.Quantity)
			total = total.Add(subtotal)
			details = append(details, &Detail{
				ID:          id.New(),
				BillID:      bill.ID,
				InventoryID: res.Inventory.ID,
				Quantity:    line.Quantity,
				PriceUnit:   res.UnitPrice,
				Subtotal:    subtotal,
				CreatedAt:   time.Now().UTC(),
			})
			if res.Warning != "" {
				warnings = append(warnings, res.Warning)
			}
		}
		bill.TotalPrice = total

		if err := s.repo.CreateBill(ctx, bill); err != nil {
			return err
		}
		if err := s.repo.CreateDetails(ctx, details); err != nil {
			return err
		}

		result = &CheckoutResult{
			Bill:         bill,
			Details:      details,
			BuyerID:      user.ID,
			BuyerCreated: created,
			Warnings:     warnings,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "checkout committed",
		"bill_id", result.Bill.ID.String(),
		"buyer_id", result.BuyerID.String(),
		"lines", len(result.Details),
		"total", result.Bill.TotalPrice.String(),
	)

	return result, nil
}

// GetBill returns an invoice header with its line items.
func (s *Service) GetBill(ctx context.Context, billID id.ID) (*Bill, []*Detail, error) {
	bill, err := s.repo.GetBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	details, err := s.repo.ListDetails(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	return bill, details, nil
}

// ListBills returns invoice headers page by page.
func (s *Service) ListBills(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Bill], error) {
	return s.repo.ListBills(ctx, filter)
}

// CountByUser counts bills belonging to a buyer.
func (s *Service) CountByUser(ctx context.Context, userID id.ID) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func validateCart(cart []CartLine) error {
	if len(cart) == 0 {
		return apperror.NewValidation("cart is empty")
	}
	seen := make(map[id.ID]bool, len(cart))
	for i, line := range cart {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("cart line is missing product_id").
				WithDetail("line", i)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("cart line quantity must be positive").
				WithDetail("line", i).
				WithDetail("quantity", line.Quantity)
		}
		if seen[line.ProductID] {
			return apperror.NewValidation("cart contains duplicate product").
				WithDetail("line", i).
				WithDetail("product_id", line.ProductID.String())
		}
		seen[line.ProductID] = true
	}
	return nil
}

// lockOrder returns cart indexes sorted by product id, the order in
// which inventory row locks are taken to avoid deadlocks between
// concurrent checkouts.
func lockOrder(cart []CartLine) []int {
	idx := make([]int, len(cart))
	for i := range cart {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return cart[idx[a]].ProductID.String() < cart[idx[b]].ProductID.String()
	})
	return idx
}
