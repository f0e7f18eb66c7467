package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/order-service/internal/entities"
	"github.com/SergeyBogomolovv/order-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID int64) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsByOrder(ctx, []int64{orderID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, items[orderID]), nil
}

func (r *postgresRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	return r.listOrders(ctx, nil)
}

// ListOrdersByOwner фильтрует по владельцу в запросе, а не после выборки
func (r *postgresRepo) ListOrdersByOwner(ctx context.Context, ownerID string) ([]entities.Order, error) {
	return r.listOrders(ctx, sq.Eq{"user_id": ownerID})
}

func (r *postgresRepo) listOrders(ctx context.Context, where sq.Sqlizer) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("id")
	if where != nil {
		q = q.Where(where)
	}
	query, args := q.MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]int64, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, items[order.ID]))
	}
	return result, nil
}

func (r *postgresRepo) itemsByOrder(ctx context.Context, orderIDs []int64) (map[int64][]Item, error) {
	query, args := r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}

	res := make(map[int64][]Item, len(orderIDs))
	for _, item := range items {
		res[item.OrderID] = append(res[item.OrderID], item)
	}
	return res, nil
}

func (r *postgresRepo) SaveOrder(ctx context.Context, o entities.Order) (int64, error) {
	query, args := r.qb.Insert("orders").
		Columns("order_date", "status", "total_amount", "user_id").
		Values(o.OrderDate, nullString(string(o.Status)), o.TotalAmount, o.OwnerID).
		Suffix("RETURNING id").
		MustSql()

	var id int64
	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}
	return id, nil
}

// SaveItems вставляет позиции одним запросом, id возвращаются в порядке VALUES
func (r *postgresRepo) SaveItems(ctx context.Context, orderID int64, items []entities.OrderItem) ([]int64, error) {
	if len(items) == 0 {
		return []int64{}, nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "price").
		Suffix("RETURNING id")

	for _, it := range items {
		q = q.Values(orderID, it.ProductID, it.Quantity, it.UnitPrice)
	}

	query, args := q.MustSql()

	var ids []int64
	if err := r.selectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to save items: %w", err)
	}
	return ids, nil
}

func (r *postgresRepo) UpdateOrder(ctx context.Context, orderID int64, status entities.Status, total decimal.Decimal) error {
	query, args := r.qb.Update("orders").
		Set("status", nullString(string(status))).
		Set("total_amount", total).
		Where(sq.Eq{"id": orderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return checkAffected(res)
}

// DeleteOrder удаляет позиции и сам заказ. Атомарность обеспечивает вызывающий через trm.
func (r *postgresRepo) DeleteOrder(ctx context.Context, orderID int64) error {
	query, args := r.qb.Delete("order_items").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}

	query, args = r.qb.Delete("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
