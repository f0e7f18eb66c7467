package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SergeyBogomolovv/order-service/internal/entities"
	"github.com/SergeyBogomolovv/order-service/internal/identity"

	"github.com/shopspring/decimal"
)

const productServiceName = "product-service"

// CreateOrder проверяет позиции по данным сервиса товаров и сохраняет заказ.
// Любая ошибка проверки прерывает создание целиком, ничего не сохраняется.
// Остаток не резервируется: два параллельных заказа могут вместе превысить склад.
func (s *orderService) CreateOrder(ctx context.Context, order entities.Order, id identity.Identity) (entities.Order, error) {
	order, err := s.assemble(ctx, order, id)
	if err != nil {
		orderCreationFailures.WithLabelValues(failureReason(err)).Inc()
		return entities.Order{}, err
	}

	if err := s.persist(ctx, &order); err != nil {
		orderCreationFailures.WithLabelValues("store").Inc()
		return entities.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	ordersCreated.Inc()
	s.logger.Debug("order created",
		slog.Int64("order_id", order.ID),
		slog.String("owner", order.OwnerID),
		slog.String("total", order.TotalAmount.String()),
	)
	s.publish(ctx, entities.EventOrderCreated, order)
	return order, nil
}

// assemble штампует дату и владельца, затем последовательно валидирует и
// оценивает каждую позицию. Цена клиента всегда игнорируется.
func (s *orderService) assemble(ctx context.Context, order entities.Order, id identity.Identity) (entities.Order, error) {
	if order.OrderDate.IsZero() {
		order.OrderDate = s.now()
	}
	order.ID = 0
	order.OwnerID = id.SubjectID
	if order.Status == "" {
		order.Status = entities.StatusCreated
	}

	order.Items = slices.Clone(order.Items)

	total := decimal.Zero
	for i := range order.Items {
		item := &order.Items[i]

		product, err := s.lookupProduct(ctx, item.ProductID)
		if err != nil {
			return entities.Order{}, err
		}

		if product.StockQuantity < item.Quantity {
			return entities.Order{}, &entities.InsufficientStockError{
				ProductID: item.ProductID,
				Available: product.StockQuantity,
				Requested: item.Quantity,
			}
		}

		item.ID = 0
		// цена округляется до масштаба хранилища, иначе сумма разойдется с позициями после записи
		item.UnitPrice = product.Price.Round(entities.MoneyScale)
		total = total.Add(item.Subtotal())

		snapshot := product
		item.Product = &snapshot
		s.enricher.Remember(product)
	}

	order.TotalAmount = total
	return order, nil
}

// lookupProduct без повторов: сбой сервиса товаров фатален для создания
func (s *orderService) lookupProduct(ctx context.Context, productID int64) (entities.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	switch {
	case err == nil:
		return product, nil
	case errors.Is(err, entities.ErrProductNotFound):
		return entities.Product{}, &entities.ProductNotFoundError{ProductID: productID}
	case errors.Is(err, entities.ErrRemoteUnavailable):
		return entities.Product{}, err
	default:
		return entities.Product{}, &entities.RemoteServiceUnavailableError{Service: productServiceName, Err: err}
	}
}

// persist сохраняет заказ и позиции одной транзакцией. Без повторов:
// вставка не идемпотентна, а сбой Commit не говорит, записан ли заказ.
func (s *orderService) persist(ctx context.Context, order *entities.Order) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		orderID, err := s.repo.SaveOrder(ctx, *order)
		if err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}

		itemIDs, err := s.repo.SaveItems(ctx, orderID, order.Items)
		if err != nil {
			return fmt.Errorf("failed to save items: %w", err)
		}
		if len(itemIDs) != len(order.Items) {
			return fmt.Errorf("saved %d items, expected %d", len(itemIDs), len(order.Items))
		}

		order.ID = orderID
		for i := range order.Items {
			order.Items[i].ID = itemIDs[i]
			order.Items[i].OrderID = orderID
		}
		return nil
	})
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, entities.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, entities.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, entities.ErrRemoteUnavailable):
		return "product_service"
	default:
		return "unknown"
	}
}
