// Package billing_repo provides the PostgreSQL implementation of the billing repository.
package billing_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain"
	"stockpos/internal/domain/billing"
	"stockpos/internal/infrastructure/storage/postgres"
)

const (
	billTable   = "bills"
	detailTable = "bill_details"
)

// BillingRepo implements billing.Repository.
type BillingRepo struct {
	txm        *postgres.TxManager
	builder    squirrel.StatementBuilderType
	billCols   []string
	detailCols []string
}

// NewBillingRepo creates a new billing repository.
func NewBillingRepo(txm *postgres.TxManager) *BillingRepo {
	return &BillingRepo{
		txm:        txm,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		billCols:   postgres.ExtractDBColumns[billing.Bill](),
		detailCols: postgres.ExtractDBColumns[billing.Detail](),
	}
}

// CreateBill inserts an invoice header.
func (r *BillingRepo) CreateBill(ctx context.Context, bill *billing.Bill) error {
	q := r.builder.
		Insert(billTable).
		SetMap(postgres.StructToMap(bill))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	return nil
}

// CreateDetails inserts all line items of a bill in one statement.
func (r *BillingRepo) CreateDetails(ctx context.Context, details []*billing.Detail) error {
	if len(details) == 0 {
		return nil
	}

	q := r.builder.
		Insert(detailTable).
		Columns(r.detailCols...)

	for _, d := range details {
		data := postgres.StructToMap(d)
		values := make([]any, len(r.detailCols))
		for i, col := range r.detailCols {
			values[i] = data[col]
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert details: %w", err)
	}

	return nil
}

// GetBill retrieves an invoice header by id.
func (r *BillingRepo) GetBill(ctx context.Context, billID id.ID) (*billing.Bill, error) {
	q := r.builder.
		Select(r.billCols...).
		From(billTable).
		Where(squirrel.Eq{"id": billID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var bill billing.Bill
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &bill, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("bill", billID.String())
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	return &bill, nil
}

// ListBills returns invoice headers, newest first.
func (r *BillingRepo) ListBills(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*billing.Bill], error) {
	result := domain.ListResult[*billing.Bill]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.
		Select(r.billCols...).
		From(billTable)

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

	q = q.OrderBy("date DESC")
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
		return result, fmt.Errorf("list bills: %w", err)
	}

	return result, nil
}

// ListDetails returns the line items of a bill in insertion order.
func (r *BillingRepo) ListDetails(ctx context.Context, billID id.ID) ([]*billing.Detail, error) {
	q := r.builder.
		Select(r.detailCols...).
		From(detailTable).
		Where(squirrel.Eq{"bill_id": billID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var details []*billing.Detail
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &details, sql, args...); err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}

	return details, nil
}

// CountByUser counts bills belonging to a buyer.
func (r *BillingRepo) CountByUser(ctx context.Context, userID id.ID) (int64, error) {
	q := r.builder.
		Select("COUNT(*)").
		From(billTable).
		Where(squirrel.Eq{"user_id": userID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}

	return count, nil
}
