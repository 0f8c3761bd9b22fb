// Package stock_repo provides the PostgreSQL implementation of the stock ledger repository.
package stock_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain"
	"stockpos/internal/domain/stock"
	"stockpos/internal/infrastructure/storage/postgres"
)

const (
	inventoryTable = "inventories"
	inputTable     = "stock_inputs"
	outputTable    = "stock_outputs"
)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
	invCols []string
}

// NewStockRepo creates a new stock ledger repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		invCols: postgres.ExtractDBColumns[stock.Inventory](),
	}
}

// GetByProduct retrieves the inventory row for a product.
func (r *StockRepo) GetByProduct(ctx context.Context, productID id.ID) (*stock.Inventory, error) {
	return r.getByProduct(ctx, productID, false)
}

// GetByProductForUpdate retrieves the inventory row for a product with
// a row lock held for the rest of the current transaction. The lock
// serializes concurrent read-modify-write spans on the same product.
func (r *StockRepo) GetByProductForUpdate(ctx context.Context, productID id.ID) (*stock.Inventory, error) {
	return r.getByProduct(ctx, productID, true)
}

func (r *StockRepo) getByProduct(ctx context.Context, productID id.ID, forUpdate bool) (*stock.Inventory, error) {
	q := r.builder.
		Select(r.invCols...).
		From(inventoryTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Limit(1)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv stock.Inventory
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inventory", productID.String())
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}

	return &inv, nil
}

// Create inserts a new inventory row.
func (r *StockRepo) Create(ctx context.Context, inv *stock.Inventory) error {
	data := postgres.StructToMap(inv)

	q := r.builder.
		Insert(inventoryTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}

	return nil
}

// Update persists quantity, total price and threshold changes with
// optimistic version check on top of the row lock.
func (r *StockRepo) Update(ctx context.Context, inv *stock.Inventory) error {
	q := r.builder.
		Update(inventoryTable).
		Set("quantity", inv.Quantity).
		Set("total_price", inv.TotalPrice).
		Set("min_quantity", inv.MinQuantity).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": inv.ID}).
		Where(squirrel.Eq{"version": inv.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("inventory", inv.ID.String())
	}

	inv.Version++
	return nil
}

// CountByProduct counts inventory rows for a product.
func (r *StockRepo) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder.
		Select("COUNT(*)").
		From(inventoryTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"deleted_at": nil})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count inventories: %w", err)
	}

	return count, nil
}

// List returns inventory rows page by page.
func (r *StockRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*stock.Inventory], error) {
	result := domain.ListResult[*stock.Inventory]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.
		Select(r.invCols...).
		From(inventoryTable)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deleted_at": nil})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("created_at")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list inventories: %w", err)
	}

	return result, nil
}

// AddInput appends an intake movement record.
func (r *StockRepo) AddInput(ctx context.Context, in *stock.Input) error {
	return r.addMovement(ctx, inputTable, in.ID, in.InventoryID, in.Quantity, in.CreatedAt)
}

// AddOutput appends a deduction movement record.
func (r *StockRepo) AddOutput(ctx context.Context, out *stock.Output) error {
	return r.addMovement(ctx, outputTable, out.ID, out.InventoryID, out.Quantity, out.CreatedAt)
}

func (r *StockRepo) addMovement(ctx context.Context, table string, movementID, inventoryID id.ID, quantity int64, createdAt any) error {
	q := r.builder.
		Insert(table).
		Columns("id", "inventory_id", "quantity", "created_at").
		Values(movementID, inventoryID, quantity, createdAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}

	return nil
}

// ListInputs returns intake records for an inventory row, newest first.
func (r *StockRepo) ListInputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*stock.Input], error) {
	return listMovements[*stock.Input](ctx, r, inputTable, inventoryID, filter)
}

// ListOutputs returns deduction records for an inventory row, newest first.
func (r *StockRepo) ListOutputs(ctx context.Context, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[*stock.Output], error) {
	return listMovements[*stock.Output](ctx, r, outputTable, inventoryID, filter)
}

func listMovements[T any](ctx context.Context, r *StockRepo, table string, inventoryID id.ID, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.
		Select("id", "inventory_id", "quantity", "created_at").
		From(table).
		Where(squirrel.Eq{"inventory_id": inventoryID})

	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", table, err)
	}

	return result, nil
}
