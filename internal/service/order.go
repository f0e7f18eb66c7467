package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-service/internal/entities"
	"github.com/SergeyBogomolovv/order-service/internal/identity"
	"github.com/SergeyBogomolovv/order-service/pkg/trm"
	"github.com/SergeyBogomolovv/order-service/pkg/utils"

	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	GetOrderByID(ctx context.Context, orderID int64) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	ListOrdersByOwner(ctx context.Context, ownerID string) ([]entities.Order, error)

	// SaveOrder возвращает присвоенный id, SaveItems - id позиций в порядке items
	SaveOrder(ctx context.Context, o entities.Order) (int64, error)
	SaveItems(ctx context.Context, orderID int64, items []entities.OrderItem) ([]int64, error)

	UpdateOrder(ctx context.Context, orderID int64, status entities.Status, total decimal.Decimal) error
	DeleteOrder(ctx context.Context, orderID int64) error
}

// ProductLookup синхронный запрос к сервису товаров.
// Отсутствие товара сигнализируется ошибкой entities.ErrProductNotFound.
type ProductLookup interface {
	GetProduct(ctx context.Context, productID int64) (entities.Product, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}

type Enricher interface {
	Enrich(ctx context.Context, orders []entities.Order) []entities.Order
	Remember(p entities.Product)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	products  ProductLookup
	enricher  Enricher
	publisher EventPublisher

	retry utils.RetryConfig
	now   func() time.Time
}

type Option func(*orderService)

func WithRetry(cfg utils.RetryConfig) Option {
	return func(s *orderService) { s.retry = cfg }
}

func WithClock(now func() time.Time) Option {
	return func(s *orderService) { s.now = now }
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	products ProductLookup,
	enricher Enricher,
	publisher EventPublisher,
	opts ...Option,
) *orderService {
	s := &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		products:  products,
		enricher:  enricher,
		publisher: publisher,
		retry: utils.RetryConfig{
			InitialDelay: 100 * time.Millisecond,
			MaxAttempts:  5,
			Multiplier:   2,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64, id identity.Identity) (entities.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if err := authorizeRead(order, id); err != nil {
		s.logger.WarnContext(ctx, "order access denied",
			slog.Int64("order_id", orderID), slog.String("subject", id.SubjectID))
		return entities.Order{}, err
	}

	return s.enricher.Enrich(ctx, []entities.Order{order})[0], nil
}

func (s *orderService) ListOrders(ctx context.Context, id identity.Identity) ([]entities.Order, error) {
	var orders []entities.Order
	fn := func() error {
		var err error
		if ownerID, all := ownerFilter(id); all {
			orders, err = s.repo.ListOrders(ctx)
		} else {
			orders, err = s.repo.ListOrdersByOwner(ctx, ownerID)
		}
		return err
	}
	if err := utils.Retry(ctx, s.retry, fn); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return s.enricher.Enrich(ctx, orders), nil
}

// UpdateOrder перезаписывает только статус и сумму, позиции не трогает.
// Проверки владельца нет.
func (s *orderService) UpdateOrder(ctx context.Context, orderID int64, status entities.Status, total decimal.Decimal) (entities.Order, error) {
	var order entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateOrder(ctx, orderID, status, total); err != nil {
			return err
		}
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Debug("order updated", slog.Int64("order_id", orderID), slog.String("status", string(status)))
	s.publish(ctx, entities.EventOrderUpdated, order)
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID int64) error {
	var order entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		return s.repo.DeleteOrder(ctx, orderID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Debug("order deleted", slog.Int64("order_id", orderID))
	s.publish(ctx, entities.EventOrderDeleted, order)
	return nil
}

func (s *orderService) findOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}
	if err := utils.Retry(ctx, s.retry, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// publish вызывается после коммита, ошибка только логируется
func (s *orderService) publish(ctx context.Context, eventType entities.EventType, order entities.Order) {
	event := entities.OrderEvent{Type: eventType, Order: order, OccurredAt: s.now()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		eventPublishFailures.WithLabelValues(string(eventType)).Inc()
		s.logger.ErrorContext(ctx, "failed to publish order event",
			slog.String("type", string(eventType)), slog.Int64("order_id", order.ID), slog.Any("error", err))
	}
}
