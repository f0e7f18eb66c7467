package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/order-service/internal/config"
	"github.com/SergeyBogomolovv/order-service/internal/entities"
	"github.com/SergeyBogomolovv/order-service/internal/identity"

	"github.com/shopspring/decimal"
)

const serviceName = "product-service"

// Product ответ сервиса товаров
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

func (p Product) toEntity() entities.Product {
	return entities.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

type Client struct {
	logger  *slog.Logger
	baseURL string
	http    *http.Client
}

func NewClient(logger *slog.Logger, cfg config.ProductService) *Client {
	return &Client{
		logger:  logger.With(slog.String("client", serviceName)),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// GetProduct запрашивает GET /api/products/{id}, пробрасывая токен вызывающего.
// 404 или пустое тело означают отсутствие товара.
func (c *Client) GetProduct(ctx context.Context, productID int64) (entities.Product, error) {
	start := time.Now()
	p, err := c.getProduct(ctx, productID)

	outcome := "ok"
	switch {
	case errors.Is(err, entities.ErrProductNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	lookupDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return p, err
}

func (c *Client) getProduct(ctx context.Context, productID int64) (entities.Product, error) {
	url := c.baseURL + "/api/products/" + strconv.FormatInt(productID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := identity.BearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return entities.Product{}, c.unavailable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return entities.Product{}, &entities.ProductNotFoundError{ProductID: productID}
	case resp.StatusCode != http.StatusOK:
		return entities.Product{}, c.unavailable(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.Product{}, c.unavailable(fmt.Errorf("failed to read body: %w", err))
	}
	if len(strings.TrimSpace(string(body))) == 0 || string(body) == "null" {
		return entities.Product{}, &entities.ProductNotFoundError{ProductID: productID}
	}

	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		return entities.Product{}, c.unavailable(fmt.Errorf("failed to decode product: %w", err))
	}

	return p.toEntity(), nil
}

func (c *Client) unavailable(err error) error {
	return &entities.RemoteServiceUnavailableError{Service: serviceName, Err: err}
}
