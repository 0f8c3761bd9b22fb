package stock

import (
	"context"
	"fmt"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/entity"
	"stockpos/internal/core/id"
	"stockpos/internal/core/tx"
	"stockpos/internal/core/types"
	"stockpos/internal/domain"
	"stockpos/internal/domain/catalogs/product"
	"stockpos/pkg/logger"
)

// ProductSource supplies product lookups for pricing and existence
// checks. Satisfied by the product repository.
type ProductSource interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// IntakeOutcome distinguishes the lazy-create path from an increment.
type IntakeOutcome string

const (
	OutcomeCreated IntakeOutcome = "created"
	OutcomeUpdated IntakeOutcome = "updated"
)

// IntakeResult is the outcome of an intake operation.
type IntakeResult struct {
	Outcome   IntakeOutcome `json:"outcome"`
	Inventory *Inventory    `json:"inventory"`

	// Warning is a low-stock advisory, empty when stock is healthy
	Warning string `json:"warning,omitempty"`
}

// ReserveResult is the outcome of a stock deduction.
type ReserveResult struct {
	Inventory *Inventory `json:"inventory"`

	// UnitPrice is the product price sampled at deduction time
	UnitPrice types.Money `json:"unit_price"`

	// Warning is a low-stock advisory, empty when stock is healthy
	Warning string `json:"warning,omitempty"`
}

// Service is the stock ledger. All quantity mutations go through it;
// every mutation runs the read-modify-write span under a row lock so
// concurrent intakes and deductions cannot lose updates.
type Service struct {
	repo      Repository
	products  ProductSource
	txManager tx.Manager
}

// NewService creates a new stock ledger service.
func NewService(repo Repository, products ProductSource, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txManager,
	}
}

// Intake receives stock for a product, creating the inventory row on
// first intake with the default minimum threshold.
func (s *Service) Intake(ctx context.Context, productID id.ID, quantity int64) (*IntakeResult, error) {
	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", quantity)
	}

	prod, err := s.getActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var result *IntakeResult
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetByProductForUpdate(ctx, productID)
		switch {
		case err == nil:
			inv.Quantity += quantity
			inv.TotalPrice = types.MulQuantity(prod.Price, inv.Quantity)
			if err := s.repo.Update(ctx, inv); err != nil {
				return err
			}
			result = &IntakeResult{Outcome: OutcomeUpdated, Inventory: inv}

		case apperror.IsNotFound(err):
			inv = &Inventory{
				Base:        entity.NewBase(),
				ProductID:   productID,
				Quantity:    quantity,
				TotalPrice:  types.MulQuantity(prod.Price, quantity),
				MinQuantity: DefaultMinQuantity,
			}
			if err := s.repo.Create(ctx, inv); err != nil {
				return err
			}
			result = &IntakeResult{Outcome: OutcomeCreated, Inventory: inv}

		default:
			return err
		}

		return s.repo.AddInput(ctx, NewInput(result.Inventory.ID, quantity))
	})
	if err != nil {
		return nil, err
	}

	if result.Inventory.Quantity < result.Inventory.MinQuantity {
		result.Warning = lowStockWarning(prod.Name, result.Inventory.Quantity, result.Inventory.MinQuantity)
	}

	logger.Info(ctx, "stock intake",
		"product_id", productID.String(),
		"quantity", quantity,
		"outcome", string(result.Outcome),
		"on_hand", result.Inventory.Quantity,
	)

	return result, nil
}

// SetMinimum overwrites the low-stock threshold, creating an empty
// inventory row when the product has none yet.
func (s *Service) SetMinimum(ctx context.Context, productID id.ID, minQuantity int64) (*Inventory, error) {
	if minQuantity < 0 {
		return nil, apperror.NewValidation("min_quantity cannot be negative").
			WithDetail("min_quantity", minQuantity)
	}

	if _, err := s.getActiveProduct(ctx, productID); err != nil {
		return nil, err
	}

	var result *Inventory
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetByProductForUpdate(ctx, productID)
		switch {
		case err == nil:
			inv.MinQuantity = minQuantity
			if err := s.repo.Update(ctx, inv); err != nil {
				return err
			}

		case apperror.IsNotFound(err):
			inv = &Inventory{
				Base:        entity.NewBase(),
				ProductID:   productID,
				Quantity:    0,
				TotalPrice:  types.Zero(),
				MinQuantity: minQuantity,
			}
			if err := s.repo.Create(ctx, inv); err != nil {
				return err
			}

		default:
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Reserve deducts stock for one checkout line. It locks the inventory
// row, rejects deductions that would drive quantity negative, and
// appends the movement record. Runs inside the caller's transaction
// when one is active.
func (s *Service) Reserve(ctx context.Context, productID id.ID, quantity int64) (*ReserveResult, error) {
	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", quantity)
	}

	prod, err := s.getActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var result *ReserveResult
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetByProductForUpdate(ctx, productID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("inventory", productID.String())
			}
			return err
		}

		if quantity > inv.Quantity {
			return apperror.NewInsufficientStock(productID.String(), quantity, inv.Quantity)
		}

		inv.Quantity -= quantity
		inv.TotalPrice = types.MulQuantity(prod.Price, inv.Quantity)
		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}
		if err := s.repo.AddOutput(ctx, NewOutput(inv.ID, quantity)); err != nil {
			return err
		}

		result = &ReserveResult{Inventory: inv, UnitPrice: prod.Price}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Inventory.Quantity <= result.Inventory.MinQuantity {
		result.Warning = lowStockWarning(prod.Name, result.Inventory.Quantity, result.Inventory.MinQuantity)
	}

	return result, nil
}

// GetByProduct returns the inventory row for a product.
func (s *Service) GetByProduct(ctx context.Context, productID id.ID) (*Inventory, error) {
	return s.repo.GetByProduct(ctx, productID)
}

// List returns inventory rows page by page.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Inventory], error) {
	return s.repo.List(ctx, filter)
}

// ListInputs returns the intake trail for an inventory row.
func (s *Service) ListInputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Input], error) {
	return s.repo.ListInputs(ctx, inventoryID, filter)
}

// ListOutputs returns the deduction trail for an inventory row.
func (s *Service) ListOutputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Output], error) {
	return s.repo.ListOutputs(ctx, inventoryID, filter)
}

func (s *Service) getActiveProduct(ctx context.Context, productID id.ID) (*product.Product, error) {
	prod, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if prod.IsDeleted() {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return prod, nil
}

func lowStockWarning(productName string, quantity, minQuantity int64) string {
	return fmt.Sprintf("product %q is low on stock: %d on hand, minimum is %d",
		productName, quantity, minQuantity)
}
