package handler

import (
	"time"

	"github.com/SergeyBogomolovv/order-service/internal/entities"

	"github.com/shopspring/decimal"
)

func init() {
	// суммы отдаются числами, как у сервиса товаров
	decimal.MarshalJSONWithoutQuotes = true
}

// Order представляет заказ
type Order struct {
	ID          int64           `json:"id"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      string          `json:"status,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	UserID      string          `json:"userId"`
	Items       []OrderItem     `json:"orderItems"`
}

// OrderItem позиция заказа
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product,omitempty"`
}

// Product снимок товара из сервиса товаров
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

// CreateOrderRequest тело запроса на создание. Цена, сумма и владелец
// клиента игнорируются.
type CreateOrderRequest struct {
	OrderDate *time.Time          `json:"orderDate"`
	Status    string              `json:"status"`
	Items     []CreateItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

type CreateItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// UpdateOrderRequest перезаписывает статус и сумму как есть
type UpdateOrderRequest struct {
	Status      string           `json:"status" validate:"required"`
	TotalAmount *decimal.Decimal `json:"totalAmount" validate:"required"`
}

// StockErrorDetails подробности отказа по остатку
type StockErrorDetails struct {
	ProductID int64 `json:"productId"`
	Available int   `json:"available"`
	Requested int   `json:"requested"`
}

// ProductErrorDetails подробности отсутствующего товара
type ProductErrorDetails struct {
	ProductID int64 `json:"productId"`
}

func ProductEntityToJSON(p entities.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

func ItemEntityToJSON(i entities.OrderItem) OrderItem {
	item := OrderItem{
		ID:        i.ID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Price:     i.UnitPrice,
	}
	if i.Product != nil {
		p := ProductEntityToJSON(*i.Product)
		item.Product = &p
	}
	return item
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemEntityToJSON(it))
	}

	return Order{
		ID:          o.ID,
		OrderDate:   o.OrderDate,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		UserID:      o.OwnerID,
		Items:       items,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderEntityToJSON(o))
	}
	return res
}

func (r CreateOrderRequest) ToEntity() entities.Order {
	items := make([]entities.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	order := entities.Order{
		Status: entities.Status(r.Status),
		Items:  items,
	}
	if r.OrderDate != nil {
		order.OrderDate = *r.OrderDate
	}
	return order
}
