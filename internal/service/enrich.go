package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/SergeyBogomolovv/order-service/internal/entities"

	"golang.org/x/sync/errgroup"
)

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// productEnricher добавляет к позициям снимки товаров по возможности.
// Ошибки поиска поглощаются и не влияют на результат чтения.
type productEnricher struct {
	logger   *slog.Logger
	products ProductLookup
	cache    Cache
	limit    int
}

func NewProductEnricher(logger *slog.Logger, products ProductLookup, cache Cache, concurrency int) *productEnricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &productEnricher{
		logger:   logger.With(slog.String("component", "enricher")),
		products: products,
		cache:    cache,
		limit:    concurrency,
	}
}

// Enrich возвращает копии заказов с заполненными Product там, где товар удалось получить.
// Каждый товар запрашивается не больше одного раза за вызов.
func (e *productEnricher) Enrich(ctx context.Context, orders []entities.Order) []entities.Order {
	ids := make(map[int64]struct{})
	for _, o := range orders {
		for _, it := range o.Items {
			ids[it.ProductID] = struct{}{}
		}
	}

	var (
		mu        sync.Mutex
		snapshots = make(map[int64]entities.Product, len(ids))
		g         errgroup.Group
	)
	g.SetLimit(e.limit)

	for productID := range ids {
		g.Go(func() error {
			if p, ok := e.find(ctx, productID); ok {
				mu.Lock()
				snapshots[productID] = p
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	result := make([]entities.Order, len(orders))
	for i, o := range orders {
		items := make([]entities.OrderItem, len(o.Items))
		for j, it := range o.Items {
			it.Product = nil
			if p, ok := snapshots[it.ProductID]; ok {
				it.Product = &p
			}
			items[j] = it
		}
		if o.Items == nil {
			items = nil
		}
		o.Items = items
		result[i] = o
	}
	return result
}

// Remember кладет свежий снимок в кэш
func (e *productEnricher) Remember(p entities.Product) {
	data, err := p.Marshal()
	if err != nil {
		e.logger.Error("failed to marshal product", slog.Int64("product_id", p.ID), slog.Any("error", err))
		return
	}
	e.cache.Set(productKey(p.ID), data)
}

// find возвращает (товар, true) или (пусто, false) без ошибки
func (e *productEnricher) find(ctx context.Context, productID int64) (entities.Product, bool) {
	if data, ok := e.cache.Get(productKey(productID)); ok {
		var p entities.Product
		if err := p.Unmarshal(data); err == nil {
			return p, true
		}
	}

	p, err := e.products.GetProduct(ctx, productID)
	if err != nil {
		enrichmentFailures.Inc()
		e.logger.DebugContext(ctx, "product enrichment skipped",
			slog.Int64("product_id", productID), slog.Any("error", err))
		return entities.Product{}, false
	}

	e.Remember(p)
	return p, true
}

func productKey(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}
