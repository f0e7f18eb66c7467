package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/order-service/internal/entities"
	"github.com/SergeyBogomolovv/order-service/internal/identity"
	"github.com/SergeyBogomolovv/order-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	ListOrders(ctx context.Context, id identity.Identity) ([]entities.Order, error)
	GetOrder(ctx context.Context, orderID int64, id identity.Identity) (entities.Order, error)
	CreateOrder(ctx context.Context, order entities.Order, id identity.Identity) (entities.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, status entities.Status, total decimal.Decimal) (entities.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	basePath string
}

// NewHTTPHandler создает обработчик, смонтированный на basePath.
// Несколько экземпляров с разными путями работают поверх одного сервиса.
func NewHTTPHandler(logger *slog.Logger, svc OrderService, basePath string) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http"), slog.String("base_path", basePath)),
		validate: validator.New(),
		svc:      svc,
		basePath: basePath,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route(h.basePath, func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)
	})
}

// ListOrders возвращает заказы вызывающего.
// @Summary      Список заказов
// @Description  Администратор видит все заказы, остальные только свои
// @Tags         orders
// @Security     BearerAuth
// @Success      200  {array}   Order
// @Failure      401  {object}  utils.ErrorResponse "Нет токена"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	orders, err := h.svc.ListOrders(ctx, caller(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "list", err)
		return
	}

	h.observe("list", http.StatusOK, start)
	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Description  Возвращает заказ с актуальными данными товаров
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path      int  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Заказ принадлежит другому пользователю"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(ctx, orderID, caller(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "get", err)
		return
	}

	h.observe("get", http.StatusOK, start)
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CreateOrder создает заказ вызывающего.
// @Summary      Создать заказ
// @Description  Цены и сумма берутся из сервиса товаров, владелец из токена
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Param        order  body      CreateOrderRequest  true  "Позиции заказа"
// @Success      201    {object}  Order
// @Failure      400    {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      409    {object}  utils.ErrorResponse "Недостаточно товара"
// @Failure      422    {object}  utils.ErrorResponse "Товар не найден"
// @Failure      503    {object}  utils.ErrorResponse "Сервис товаров недоступен"
// @Router       /api/orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.CreateOrder(ctx, req.ToEntity(), caller(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "create", err)
		return
	}

	h.observe("create", http.StatusCreated, start)
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// UpdateOrder перезаписывает статус и сумму заказа.
// @Summary      Обновить заказ
// @Description  Статус не проверяется, сумма сохраняется как есть
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Param        id     path      int                 true  "Идентификатор заказа"
// @Param        order  body      UpdateOrderRequest  true  "Статус и сумма"
// @Success      200    {object}  Order
// @Failure      400    {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404    {object}  utils.ErrorResponse "Заказ не найден"
// @Router       /api/orders/{id} [put]
func (h *HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.UpdateOrder(ctx, orderID, entities.Status(req.Status), *req.TotalAmount)
	if err != nil {
		h.writeServiceError(ctx, w, "update", err)
		return
	}

	h.observe("update", http.StatusOK, start)
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// DeleteOrder удаляет заказ вместе с позициями.
// @Summary      Удалить заказ
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path  int  true  "Идентификатор заказа"
// @Success      204
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Router       /api/orders/{id} [delete]
func (h *HTTPHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteOrder(ctx, orderID); err != nil {
		h.writeServiceError(ctx, w, "delete", err)
		return
	}

	h.observe("delete", http.StatusNoContent, start)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")

	if err := h.validate.Var(raw, "required,number"); err != nil {
		utils.WriteValidationError(w, err)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	var (
		stockErr   *entities.InsufficientStockError
		productErr *entities.ProductNotFoundError
		code       int
	)

	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		code = http.StatusNotFound
		utils.WriteError(w, "order not found", code)
	case errors.Is(err, entities.ErrAccessDenied):
		code = http.StatusForbidden
		utils.WriteError(w, "access denied", code)
	case errors.As(err, &stockErr):
		code = http.StatusConflict
		utils.WriteErrorDetails(w, "insufficient stock", StockErrorDetails{
			ProductID: stockErr.ProductID,
			Available: stockErr.Available,
			Requested: stockErr.Requested,
		}, code)
	case errors.As(err, &productErr):
		code = http.StatusUnprocessableEntity
		utils.WriteErrorDetails(w, "product not found", ProductErrorDetails{ProductID: productErr.ProductID}, code)
	case errors.Is(err, entities.ErrRemoteUnavailable):
		code = http.StatusServiceUnavailable
		h.logger.WarnContext(ctx, "product service unavailable", slog.String("op", op), slog.Any("error", err))
		utils.WriteError(w, "product service unavailable", code)
	default:
		code = http.StatusInternalServerError
		h.logger.ErrorContext(ctx, "failed to "+op+" order", slog.Any("error", err))
		utils.WriteError(w, "internal server error", code)
	}

	orderRequestTotal.WithLabelValues(op, strconv.Itoa(code)).Inc()
}

func (h *HTTPHandler) observe(op string, code int, start time.Time) {
	orderRequestTotal.WithLabelValues(op, strconv.Itoa(code)).Inc()
	orderRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func caller(ctx context.Context) identity.Identity {
	return identity.Resolve(identity.FromContext(ctx))
}
