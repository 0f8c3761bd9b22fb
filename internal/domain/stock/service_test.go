package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
	"stockpos/internal/domain"
	"stockpos/internal/domain/catalogs/product"
)

type fakeProducts struct {
	items map[id.ID]*product.Product
}

func (f *fakeProducts) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.items[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

type fakeRepo struct {
	byProduct map[id.ID]*Inventory
	inputs    []*Input
	outputs   []*Output
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byProduct: make(map[id.ID]*Inventory)}
}

func (f *fakeRepo) GetByProduct(ctx context.Context, productID id.ID) (*Inventory, error) {
	inv, ok := f.byProduct[productID]
	if !ok {
		return nil, apperror.NewNotFound("inventory", productID.String())
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeRepo) GetByProductForUpdate(ctx context.Context, productID id.ID) (*Inventory, error) {
	return f.GetByProduct(ctx, productID)
}

func (f *fakeRepo) Create(ctx context.Context, inv *Inventory) error {
	cp := *inv
	f.byProduct[inv.ProductID] = &cp
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, inv *Inventory) error {
	if _, ok := f.byProduct[inv.ProductID]; !ok {
		return apperror.NewNotFound("inventory", inv.ProductID.String())
	}
	cp := *inv
	f.byProduct[inv.ProductID] = &cp
	return nil
}

func (f *fakeRepo) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	if _, ok := f.byProduct[productID]; ok {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Inventory], error) {
	var items []*Inventory
	for _, inv := range f.byProduct {
		items = append(items, inv)
	}
	return domain.ListResult[*Inventory]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) AddInput(ctx context.Context, in *Input) error {
	f.inputs = append(f.inputs, in)
	return nil
}

func (f *fakeRepo) AddOutput(ctx context.Context, out *Output) error {
	f.outputs = append(f.outputs, out)
	return nil
}

func (f *fakeRepo) ListInputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Input], error) {
	var items []*Input
	for _, in := range f.inputs {
		if in.InventoryID == inventoryID {
			items = append(items, in)
		}
	}
	return domain.ListResult[*Input]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) ListOutputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*Output], error) {
	var items []*Output
	for _, out := range f.outputs {
		if out.InventoryID == inventoryID {
			items = append(items, out)
		}
	}
	return domain.ListResult[*Output]{Items: items, TotalCount: int64(len(items))}, nil
}

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(price string) (*Service, *fakeRepo, id.ID) {
	repo := newFakeRepo()
	productID := id.New()
	products := &fakeProducts{items: map[id.ID]*product.Product{
		productID: product.NewProduct("Coffee Beans 1kg", types.MustMoney(price), id.New(), id.New()),
	}}
	products.items[productID].ID = productID
	return NewService(repo, products, passTxManager{}), repo, productID
}

func TestIntake_CreatesInventoryOnFirstIntake(t *testing.T) {
	svc, repo, productID := newTestService("2.50")
	ctx := context.Background()

	result, err := svc.Intake(ctx, productID, 10)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, result.Outcome)
	assert.Equal(t, int64(10), result.Inventory.Quantity)
	assert.Equal(t, DefaultMinQuantity, result.Inventory.MinQuantity)
	assert.True(t, result.Inventory.TotalPrice.Equal(types.MustMoney("25.00")),
		"total_price = %s", result.Inventory.TotalPrice)
	assert.Empty(t, result.Warning)
	assert.Len(t, repo.inputs, 1)
	assert.Equal(t, int64(10), repo.inputs[0].Quantity)
}

func TestIntake_IncrementsExistingInventory(t *testing.T) {
	svc, repo, productID := newTestService("2.50")
	ctx := context.Background()

	_, err := svc.Intake(ctx, productID, 10)
	require.NoError(t, err)

	result, err := svc.Intake(ctx, productID, 5)
	require.NoError(t, err)

	assert.Equal(t, OutcomeUpdated, result.Outcome)
	assert.Equal(t, int64(15), result.Inventory.Quantity)
	assert.True(t, result.Inventory.TotalPrice.Equal(types.MustMoney("37.50")),
		"total_price = %s", result.Inventory.TotalPrice)
	assert.Len(t, repo.inputs, 2)
}

func TestIntake_RecomputesValuationFromCurrentPrice(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	prod := product.NewProduct("Tea", types.MustMoney("1.00"), id.New(), id.New())
	prod.ID = productID
	products := &fakeProducts{items: map[id.ID]*product.Product{productID: prod}}
	svc := NewService(repo, products, passTxManager{})
	ctx := context.Background()

	_, err := svc.Intake(ctx, productID, 10)
	require.NoError(t, err)

	// Price change applies to the whole on-hand valuation, not just the delta.
	prod.Price = types.MustMoney("3.00")

	result, err := svc.Intake(ctx, productID, 5)
	require.NoError(t, err)
	assert.True(t, result.Inventory.TotalPrice.Equal(types.MustMoney("45.00")),
		"total_price = %s", result.Inventory.TotalPrice)
}

func TestIntake_WarnsBelowMinimum(t *testing.T) {
	svc, _, productID := newTestService("2.50")
	ctx := context.Background()

	result, err := svc.Intake(ctx, productID, 2)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, result.Outcome)
	assert.NotEmpty(t, result.Warning)
	assert.Contains(t, result.Warning, "Coffee Beans 1kg")
}

func TestIntake_RejectsNonPositiveQuantity(t *testing.T) {
	svc, repo, productID := newTestService("2.50")
	ctx := context.Background()

	for _, qty := range []int64{0, -3} {
		_, err := svc.Intake(ctx, productID, qty)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}
	assert.Empty(t, repo.inputs)
}

func TestIntake_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestService("2.50")

	_, err := svc.Intake(context.Background(), id.New(), 10)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSetMinimum_CreatesEmptyInventory(t *testing.T) {
	svc, _, productID := newTestService("2.50")
	ctx := context.Background()

	inv, err := svc.SetMinimum(ctx, productID, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(0), inv.Quantity)
	assert.Equal(t, int64(7), inv.MinQuantity)
	assert.True(t, inv.TotalPrice.IsZero())
}

func TestSetMinimum_OverwritesThreshold(t *testing.T) {
	svc, _, productID := newTestService("2.50")
	ctx := context.Background()

	_, err := svc.Intake(ctx, productID, 10)
	require.NoError(t, err)

	inv, err := svc.SetMinimum(ctx, productID, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(3), inv.MinQuantity)
	assert.Equal(t, int64(10), inv.Quantity)
}

func TestSetMinimum_RejectsNegative(t *testing.T) {
	svc, _, productID := newTestService("2.50")

	_, err := svc.SetMinimum(context.Background(), productID, -1)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestReserve_DeductsAndRecordsMovement(t *testing.T) {
	svc, repo, productID := newTestService("2.50")
	ctx := context.Background()

	_, err := svc.Intake(ctx, productID, 15)
	require.NoError(t, err)

	result, err := svc.Reserve(ctx, productID, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(12), result.Inventory.Quantity)
	assert.True(t, result.UnitPrice.Equal(types.MustMoney("2.50")))
	assert.True(t, result.Inventory.TotalPrice.Equal(types.MustMoney("30.00")),
		"total_price = %s", result.Inventory.TotalPrice)
	assert.Empty(t, result.Warning)
	require.Len(t, repo.outputs, 1)
	assert.Equal(t, int64(3), repo.outputs[0].Quantity)
}

func TestReserve_InsufficientStock(t *testing.T) {
	svc, repo, productID := newTestService("2.50")
	ctx := context.Background()

	_, err := svc.Intake(ctx, productID, 15)
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, productID, 20)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(15), appErr.Details["available"])
	assert.Equal(t, int64(20), appErr.Details["requested"])

	// Inventory untouched, no movement recorded.
	inv, err := repo.GetByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), inv.Quantity)
	assert.Empty(t, repo.outputs)
}

func TestReserve_WarnsAtThreshold(t *testing.T) {
	svc, _, productID := newTestService("2.50")
	ctx := context.Background()

	_, err := svc.Intake(ctx, productID, 10)
	require.NoError(t, err)

	// 10 - 5 = 5, equal to the default threshold.
	result, err := svc.Reserve(ctx, productID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Inventory.Quantity)
	assert.NotEmpty(t, result.Warning)
}

func TestReserve_NoInventory(t *testing.T) {
	svc, _, productID := newTestService("2.50")

	_, err := svc.Reserve(context.Background(), productID, 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReserve_NeverGoesNegative(t *testing.T) {
	svc, repo, productID := newTestService("2.50")
	ctx := context.Background()

	_, err := svc.Intake(ctx, productID, 5)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _ = svc.Reserve(ctx, productID, 2)
	}

	inv, err := repo.GetByProduct(ctx, productID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, inv.Quantity, int64(0))
	assert.Equal(t, int64(1), inv.Quantity)
}
