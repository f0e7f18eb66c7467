package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status открытое перечисление, переходы между статусами не валидируются
type Status string

const (
	StatusCreated   Status = "Created"
	StatusConfirmed Status = "Confirmed"
	StatusShipped   Status = "Shipped"
	StatusCancelled Status = "Cancelled"
)

type Order struct {
	ID          int64
	OrderDate   time.Time
	Status      Status
	TotalAmount decimal.Decimal
	OwnerID     string

	Items []OrderItem
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal

	// снимок товара только для ответа, не сохраняется
	Product *Product
}

// MoneyScale число знаков после запятой в колонках сумм (NUMERIC(19, 2))
const MoneyScale = 2

// Subtotal возвращает UnitPrice * Quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal суммирует позиции заказа по авторитетным ценам
func (o Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

type EventType string

const (
	EventOrderCreated EventType = "order.created"
	EventOrderUpdated EventType = "order.updated"
	EventOrderDeleted EventType = "order.deleted"
)

type OrderEvent struct {
	Type       EventType
	Order      Order
	OccurredAt time.Time
}
