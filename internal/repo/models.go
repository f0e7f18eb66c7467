package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/order-service/internal/entities"

	"github.com/shopspring/decimal"
)

var orderColumns = []string{"id", "order_date", "status", "total_amount", "user_id"}

var itemColumns = []string{"id", "order_id", "product_id", "quantity", "price"}

type Order struct {
	ID          int64           `db:"id"`
	OrderDate   time.Time       `db:"order_date"`
	Status      sql.NullString  `db:"status"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	UserID      string          `db:"user_id"`
}

type Item struct {
	ID        int64           `db:"id"`
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

func ItemToEntity(i Item) entities.OrderItem {
	return entities.OrderItem{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.Price,
	}
}

func OrderToEntity(o Order, items []Item) entities.Order {
	order := entities.Order{
		ID:          o.ID,
		OrderDate:   o.OrderDate,
		Status:      entities.Status(nullStringToString(o.Status)),
		TotalAmount: o.TotalAmount,
		OwnerID:     o.UserID,
	}

	if len(items) > 0 {
		order.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
