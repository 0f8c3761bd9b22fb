package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/core/types"
	"stockpos/internal/domain"
	"stockpos/internal/domain/stock"
	"stockpos/internal/domain/users"
)

// snapshotter lets the fake transaction manager roll fakes back.
type snapshotter interface {
	snapshot()
	restore()
}

// fakeTxManager snapshots every participating fake at the start of the
// outermost transaction and restores all of them when fn fails,
// imitating a database rollback.
type fakeTxManager struct {
	parts []snapshotter
	depth int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.depth > 0 {
		m.depth++
		defer func() { m.depth-- }()
		return fn(ctx)
	}
	for _, p := range m.parts {
		p.snapshot()
	}
	m.depth++
	err := fn(ctx)
	m.depth--
	if err != nil {
		for _, p := range m.parts {
			p.restore()
		}
	}
	return err
}

type ledgerRow struct {
	inventoryID id.ID
	name        string
	price       types.Money
	quantity    int64
	minQuantity int64
}

type fakeLedger struct {
	rows    map[id.ID]*ledgerRow
	outputs int

	saved        map[id.ID]ledgerRow
	savedOutputs int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: make(map[id.ID]*ledgerRow)}
}

func (f *fakeLedger) add(productID id.ID, name, price string, quantity, minQuantity int64) {
	f.rows[productID] = &ledgerRow{
		inventoryID: id.New(),
		name:        name,
		price:       types.MustMoney(price),
		quantity:    quantity,
		minQuantity: minQuantity,
	}
}

func (f *fakeLedger) Reserve(ctx context.Context, productID id.ID, quantity int64) (*stock.ReserveResult, error) {
	row, ok := f.rows[productID]
	if !ok {
		return nil, apperror.NewNotFound("inventory", productID.String())
	}
	if quantity > row.quantity {
		return nil, apperror.NewInsufficientStock(productID.String(), quantity, row.quantity)
	}
	row.quantity -= quantity
	f.outputs++

	inv := &stock.Inventory{
		ProductID:   productID,
		Quantity:    row.quantity,
		TotalPrice:  types.MulQuantity(row.price, row.quantity),
		MinQuantity: row.minQuantity,
	}
	inv.ID = row.inventoryID

	result := &stock.ReserveResult{Inventory: inv, UnitPrice: row.price}
	if row.quantity <= row.minQuantity {
		result.Warning = "low stock: " + row.name
	}
	return result, nil
}

func (f *fakeLedger) snapshot() {
	f.saved = make(map[id.ID]ledgerRow, len(f.rows))
	for k, v := range f.rows {
		f.saved[k] = *v
	}
	f.savedOutputs = f.outputs
}

func (f *fakeLedger) restore() {
	for k, v := range f.saved {
		row := v
		f.rows[k] = &row
	}
	f.outputs = f.savedOutputs
}

type fakeBillingRepo struct {
	bills   []*Bill
	details []*Detail

	savedBills   int
	savedDetails int
}

func (f *fakeBillingRepo) CreateBill(ctx context.Context, bill *Bill) error {
	f.bills = append(f.bills, bill)
	return nil
}

func (f *fakeBillingRepo) CreateDetails(ctx context.Context, details []*Detail) error {
	f.details = append(f.details, details...)
	return nil
}

func (f *fakeBillingRepo) GetBill(ctx context.Context, billID id.ID) (*Bill, error) {
	for _, b := range f.bills {
		if b.ID == billID {
			return b, nil
		}
	}
	return nil, apperror.NewNotFound("bill", billID.String())
}

func (f *fakeBillingRepo) ListBills(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Bill], error) {
	return domain.ListResult[*Bill]{Items: f.bills, TotalCount: int64(len(f.bills))}, nil
}

func (f *fakeBillingRepo) ListDetails(ctx context.Context, billID id.ID) ([]*Detail, error) {
	var items []*Detail
	for _, d := range f.details {
		if d.BillID == billID {
			items = append(items, d)
		}
	}
	return items, nil
}

func (f *fakeBillingRepo) CountByUser(ctx context.Context, userID id.ID) (int64, error) {
	var n int64
	for _, b := range f.bills {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBillingRepo) snapshot() {
	f.savedBills = len(f.bills)
	f.savedDetails = len(f.details)
}

func (f *fakeBillingRepo) restore() {
	f.bills = f.bills[:f.savedBills]
	f.details = f.details[:f.savedDetails]
}

type fakeUserRepo struct {
	users []*users.User
	saved int
}

func (f *fakeUserRepo) Create(ctx context.Context, u *users.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*users.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (f *fakeUserRepo) Update(ctx context.Context, u *users.User) error { return nil }

func (f *fakeUserRepo) SetDeleted(ctx context.Context, userID id.ID, deleted bool) error {
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*users.User], error) {
	return domain.ListResult[*users.User]{Items: f.users, TotalCount: int64(len(f.users))}, nil
}

func (f *fakeUserRepo) Exists(ctx context.Context, userID id.ID) (bool, error) {
	for _, u := range f.users {
		if u.ID == userID && !u.IsDeleted() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	for _, u := range f.users {
		if u.Username == username && !u.IsDeleted() {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (f *fakeUserRepo) FindByUsernameIncludingDeleted(ctx context.Context, username string) (*users.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (f *fakeUserRepo) FindByDocument(ctx context.Context, document string) (*users.User, error) {
	// Deleted accounts included, matching the repository contract.
	for _, u := range f.users {
		if u.Document == document {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", document)
}

func (f *fakeUserRepo) CountActiveByRole(ctx context.Context, roleID id.ID) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.RoleID == roleID && !u.IsDeleted() {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) snapshot() { f.saved = len(f.users) }
func (f *fakeUserRepo) restore() { f.users = f.users[:f.saved] }

type fakeRoleRepo struct {
	roles []*users.Role
}

func (f *fakeRoleRepo) Create(ctx context.Context, r *users.Role) error {
	f.roles = append(f.roles, r)
	return nil
}

func (f *fakeRoleRepo) GetByID(ctx context.Context, roleID id.ID) (*users.Role, error) {
	for _, r := range f.roles {
		if r.ID == roleID {
			return r, nil
		}
	}
	return nil, apperror.NewNotFound("role", roleID.String())
}

func (f *fakeRoleRepo) Update(ctx context.Context, r *users.Role) error { return nil }

func (f *fakeRoleRepo) SetDeleted(ctx context.Context, roleID id.ID, deleted bool) error {
	return nil
}

func (f *fakeRoleRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*users.Role], error) {
	return domain.ListResult[*users.Role]{Items: f.roles, TotalCount: int64(len(f.roles))}, nil
}

func (f *fakeRoleRepo) Exists(ctx context.Context, roleID id.ID) (bool, error) {
	for _, r := range f.roles {
		if r.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoleRepo) FindByName(ctx context.Context, name string) (*users.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, apperror.NewNotFound("role", name)
}

type checkoutFixture struct {
	svc      *Service
	ledger   *fakeLedger
	bills    *fakeBillingRepo
	userRepo *fakeUserRepo
}

func newCheckoutFixture() *checkoutFixture {
	ledger := newFakeLedger()
	bills := &fakeBillingRepo{}
	userRepo := &fakeUserRepo{}
	roleRepo := &fakeRoleRepo{roles: []*users.Role{users.NewRole("Client")}}

	txm := &fakeTxManager{parts: []snapshotter{ledger, bills, userRepo}}
	resolver := NewResolver(userRepo, roleRepo, DefaultResolverConfig())

	return &checkoutFixture{
		svc:      NewService(bills, resolver, ledger, txm),
		ledger:   ledger,
		bills:    bills,
		userRepo: userRepo,
	}
}

func TestCheckout_SingleLine(t *testing.T) {
	fx := newCheckoutFixture()
	productID := id.New()
	fx.ledger.add(productID, "Coffee", "2.50", 15, 5)

	result, err := fx.svc.Checkout(context.Background(),
		BuyerInfo{Document: "123", FirstName: "Ana", LastName: "Diaz"},
		[]CartLine{{ProductID: productID, Quantity: 3}},
	)
	require.NoError(t, err)

	assert.True(t, result.Bill.TotalPrice.Equal(types.MustMoney("7.50")),
		"total = %s", result.Bill.TotalPrice)
	require.Len(t, result.Details, 1)
	assert.Equal(t, int64(3), result.Details[0].Quantity)
	assert.True(t, result.Details[0].PriceUnit.Equal(types.MustMoney("2.50")))
	assert.True(t, result.Details[0].Subtotal.Equal(types.MustMoney("7.50")))

	assert.Equal(t, int64(12), fx.ledger.rows[productID].quantity)
	assert.Equal(t, 1, fx.ledger.outputs)

	// Walk-in account registered from the document.
	assert.True(t, result.BuyerCreated)
	require.Len(t, fx.userRepo.users, 1)
	buyer := fx.userRepo.users[0]
	assert.Equal(t, "123", buyer.Username)
	assert.Equal(t, "123", buyer.Document)
	assert.Equal(t, buyer.ID, result.BuyerID)
}

func TestCheckout_ReusesExistingBuyer(t *testing.T) {
	fx := newCheckoutFixture()
	productID := id.New()
	fx.ledger.add(productID, "Coffee", "2.50", 100, 5)

	first, err := fx.svc.Checkout(context.Background(),
		BuyerInfo{Document: "123"},
		[]CartLine{{ProductID: productID, Quantity: 1}},
	)
	require.NoError(t, err)

	second, err := fx.svc.Checkout(context.Background(),
		BuyerInfo{Document: "123", FirstName: "Different", LastName: "Name"},
		[]CartLine{{ProductID: productID, Quantity: 1}},
	)
	require.NoError(t, err)

	assert.Equal(t, first.BuyerID, second.BuyerID)
	assert.False(t, second.BuyerCreated)
	assert.Len(t, fx.userRepo.users, 1)
}

func TestCheckout_ResolvesDeletedBuyer(t *testing.T) {
	fx := newCheckoutFixture()
	productID := id.New()
	fx.ledger.add(productID, "Coffee", "2.50", 100, 5)

	deleted := users.NewUser("123", "123", id.New())
	deleted.MarkDeleted()
	fx.userRepo.users = append(fx.userRepo.users, deleted)

	result, err := fx.svc.Checkout(context.Background(),
		BuyerInfo{Document: "123"},
		[]CartLine{{ProductID: productID, Quantity: 1}},
	)
	require.NoError(t, err)

	assert.Equal(t, deleted.ID, result.BuyerID)
	assert.False(t, result.BuyerCreated)
	assert.Len(t, fx.userRepo.users, 1)
}

func TestCheckout_MultiLineTotals(t *testing.T) {
	fx := newCheckoutFixture()
	coffee, tea := id.New(), id.New()
	fx.ledger.add(coffee, "Coffee", "2.50", 100, 5)
	fx.ledger.add(tea, "Tea", "1.25", 100, 5)

	result, err := fx.svc.Checkout(context.Background(),
		BuyerInfo{Document: "123"},
		[]CartLine{
			{ProductID: coffee, Quantity: 4},
			{ProductID: tea, Quantity: 3},
		},
	)
	require.NoError(t, err)

	// 4*2.50 + 3*1.25 = 13.75
	assert.True(t, result.Bill.TotalPrice.Equal(types.MustMoney("13.75")),
		"total = %s", result.Bill.TotalPrice)

	sum := types.Zero()
	for _, d := range result.Details {
		sum = sum.Add(d.Subtotal)
	}
	assert.True(t, result.Bill.TotalPrice.Equal(sum))

	// Details follow cart order regardless of lock order.
	require.Len(t, result.Details, 2)
	assert.Equal(t, int64(4), result.Details[0].Quantity)
	assert.Equal(t, int64(3), result.Details[1].Quantity)
}

func TestCheckout_RollsBackOnLineFailure(t *testing.T) {
	fx := newCheckoutFixture()
	coffee, tea := id.New(), id.New()
	fx.ledger.add(coffee, "Coffee", "2.50", 100, 5)
	fx.ledger.add(tea, "Tea", "1.25", 2, 5)

	_, err := fx.svc.Checkout(context.Background(),
		BuyerInfo{Document: "123"},
		[]CartLine{
			{ProductID: coffee, Quantity: 4},
			{ProductID: tea, Quantity: 10},
		},
	)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Nothing committed: quantities, movements, bill, buyer.
	assert.Equal(t, int64(100), fx.ledger.rows[coffee].quantity)
	assert.Equal(t, int64(2), fx.ledger.rows[tea].quantity)
	assert.Equal(t, 0, fx.ledger.outputs)
	assert.Empty(t, fx.bills.bills)
	assert.Empty(t, fx.bills.details)
	assert.Empty(t, fx.userRepo.users)
}

func TestCheckout_CollectsAllWarnings(t *testing.T) {
	fx := newCheckoutFixture()
	coffee, tea := id.New(), id.New()
	fx.ledger.add(coffee, "Coffee", "2.50", 6, 5)
	fx.ledger.add(tea, "Tea", "1.25", 7, 5)

	result, err := fx.svc.Checkout(context.Background(),
		BuyerInfo{Document: "123"},
		[]CartLine{
			{ProductID: coffee, Quantity: 2},
			{ProductID: tea, Quantity: 3},
		},
	)
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 2)
}

func TestCheckout_ValidatesCart(t *testing.T) {
	fx := newCheckoutFixture()
	productID := id.New()
	fx.ledger.add(productID, "Coffee", "2.50", 100, 5)

	cases := []struct {
		name string
		cart []CartLine
	}{
		{"empty cart", nil},
		{"missing product", []CartLine{{Quantity: 1}}},
		{"zero quantity", []CartLine{{ProductID: productID, Quantity: 0}}},
		{"negative quantity", []CartLine{{ProductID: productID, Quantity: -2}}},
		{"duplicate product", []CartLine{
			{ProductID: productID, Quantity: 1},
			{ProductID: productID, Quantity: 2},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.Checkout(context.Background(), BuyerInfo{Document: "123"}, tc.cart)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestCheckout_RequiresDocument(t *testing.T) {
	fx := newCheckoutFixture()
	productID := id.New()
	fx.ledger.add(productID, "Coffee", "2.50", 100, 5)

	_, err := fx.svc.Checkout(context.Background(), BuyerInfo{},
		[]CartLine{{ProductID: productID, Quantity: 1}})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
