package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-service/internal/entities"
	"github.com/SergeyBogomolovv/order-service/internal/identity"
	"github.com/SergeyBogomolovv/order-service/internal/service"
	mocks "github.com/SergeyBogomolovv/order-service/internal/service/mocks"
	"github.com/SergeyBogomolovv/order-service/pkg/cache"
	txMocks "github.com/SergeyBogomolovv/order-service/pkg/trm/mocks"
	"github.com/SergeyBogomolovv/order-service/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	alice = identity.Identity{SubjectID: "alice"}
	bob   = identity.Identity{SubjectID: "bob"}
	admin = identity.Identity{SubjectID: "root", IsAdmin: true}

	productA = entities.Product{ID: 1, Name: "Keyboard", Price: decimal.NewFromInt(100), StockQuantity: 5}
	productB = entities.Product{ID: 2, Name: "Mouse", Price: decimal.NewFromInt(50), StockQuantity: 10}
)

type testDeps struct {
	repo      *mocks.MockOrderRepo
	products  *mocks.MockProductLookup
	publisher *mocks.MockEventPublisher
	tx        *txMocks.MockManager
}

func newTestDeps(t *testing.T) testDeps {
	return testDeps{
		repo:      mocks.NewMockOrderRepo(t),
		products:  mocks.NewMockProductLookup(t),
		publisher: mocks.NewMockEventPublisher(t),
		tx:        txMocks.NewMockManager(t),
	}
}

type orderService interface {
	CreateOrder(ctx context.Context, order entities.Order, id identity.Identity) (entities.Order, error)
	GetOrder(ctx context.Context, orderID int64, id identity.Identity) (entities.Order, error)
	ListOrders(ctx context.Context, id identity.Identity) ([]entities.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, status entities.Status, total decimal.Decimal) (entities.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

func (d testDeps) service() orderService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	enricher := service.NewProductEnricher(logger, d.products, cache.NewLRUCache(16, time.Minute), 4)
	return service.NewOrderService(logger, d.tx, d.repo, d.products, enricher, d.publisher,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithRetry(utils.RetryConfig{MaxAttempts: 1}),
	)
}

func passThroughTx(tx *txMocks.MockManager) {
	tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			return cb(ctx)
		})
}

func TestOrderService_CreateOrder(t *testing.T) {
	type MockBehavior func(d testDeps)

	dbError := errors.New("db error")

	testCases := []struct {
		name         string
		order        entities.Order
		caller       identity.Identity
		mockBehavior MockBehavior
		wantErr      error
		check        func(t *testing.T, got entities.Order, err error)
	}{
		{
			name: "priced from product service",
			order: entities.Order{
				OwnerID: "mallory",
				Items: []entities.OrderItem{
					{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(1)},
					{ProductID: 2, Quantity: 1},
				},
			},
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(2)).Return(productB, nil).Once()
				passThroughTx(d.tx)
				d.repo.EXPECT().
					SaveOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
						return o.OwnerID == "alice" &&
							o.TotalAmount.Equal(decimal.NewFromInt(250)) &&
							o.Status == entities.StatusCreated &&
							o.OrderDate.Equal(fixedNow)
					})).
					Return(int64(7), nil).Once()
				d.repo.EXPECT().
					SaveItems(mock.Anything, int64(7), mock.MatchedBy(func(items []entities.OrderItem) bool {
						return len(items) == 2 &&
							items[0].UnitPrice.Equal(decimal.NewFromInt(100)) &&
							items[1].UnitPrice.Equal(decimal.NewFromInt(50))
					})).
					Return([]int64{11, 12}, nil).Once()
				d.publisher.EXPECT().
					Publish(mock.Anything, mock.MatchedBy(func(e entities.OrderEvent) bool {
						return e.Type == entities.EventOrderCreated && e.Order.ID == 7
					})).
					Return(nil).Once()
			},
			check: func(t *testing.T, got entities.Order, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(7), got.ID)
				assert.Equal(t, "alice", got.OwnerID)
				assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(250)), got.TotalAmount.String())
				assert.True(t, got.TotalAmount.Equal(got.ComputeTotal()))
				require.Len(t, got.Items, 2)
				assert.Equal(t, int64(11), got.Items[0].ID)
				assert.Equal(t, int64(7), got.Items[0].OrderID)
				assert.True(t, got.Items[0].UnitPrice.Equal(productA.Price))
				require.NotNil(t, got.Items[0].Product)
				assert.Equal(t, "Keyboard", got.Items[0].Product.Name)
			},
		},
		{
			name: "keeps submitted order date",
			order: entities.Order{
				OrderDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
				Status:    entities.StatusConfirmed,
				Items:     []entities.OrderItem{{ProductID: 1, Quantity: 5}},
			},
			caller: bob,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
				passThroughTx(d.tx)
				d.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(int64(1), nil).Once()
				d.repo.EXPECT().SaveItems(mock.Anything, int64(1), mock.Anything).Return([]int64{1}, nil).Once()
				d.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, got entities.Order, err error) {
				require.NoError(t, err)
				assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), got.OrderDate)
				assert.Equal(t, entities.StatusConfirmed, got.Status)
				assert.Equal(t, "bob", got.OwnerID)
				assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(500)))
			},
		},
		{
			name:   "insufficient stock",
			order:  entities.Order{Items: []entities.OrderItem{{ProductID: 1, Quantity: 10}}},
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
			},
			wantErr: entities.ErrInsufficientStock,
			check: func(t *testing.T, _ entities.Order, err error) {
				var stockErr *entities.InsufficientStockError
				require.ErrorAs(t, err, &stockErr)
				assert.Equal(t, entities.InsufficientStockError{ProductID: 1, Available: 5, Requested: 10}, *stockErr)
			},
		},
		{
			name:   "product not found",
			order:  entities.Order{Items: []entities.OrderItem{{ProductID: 26, Quantity: 1}}},
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(26)).
					Return(entities.Product{}, entities.ErrProductNotFound).Once()
			},
			wantErr: entities.ErrProductNotFound,
			check: func(t *testing.T, _ entities.Order, err error) {
				var nfErr *entities.ProductNotFoundError
				require.ErrorAs(t, err, &nfErr)
				assert.Equal(t, int64(26), nfErr.ProductID)
			},
		},
		{
			name: "later item fails after earlier passed",
			order: entities.Order{Items: []entities.OrderItem{
				{ProductID: 1, Quantity: 1},
				{ProductID: 26, Quantity: 1},
				{ProductID: 2, Quantity: 1},
			}},
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(26)).
					Return(entities.Product{}, entities.ErrProductNotFound).Once()
			},
			wantErr: entities.ErrProductNotFound,
		},
		{
			name:   "product service unavailable",
			order:  entities.Order{Items: []entities.OrderItem{{ProductID: 1, Quantity: 1}}},
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).
					Return(entities.Product{}, errors.New("connection refused")).Once()
			},
			wantErr: entities.ErrRemoteUnavailable,
		},
		{
			name:   "store fails",
			order:  entities.Order{Items: []entities.OrderItem{{ProductID: 1, Quantity: 1}}},
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
				passThroughTx(d.tx)
				d.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(int64(3), nil).Once()
				d.repo.EXPECT().SaveItems(mock.Anything, int64(3), mock.Anything).Return(nil, dbError).Once()
			},
			wantErr: dbError,
		},
		{
			name:   "publish failure does not fail creation",
			order:  entities.Order{Items: []entities.OrderItem{{ProductID: 2, Quantity: 3}}},
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.products.EXPECT().GetProduct(mock.Anything, int64(2)).Return(productB, nil).Once()
				passThroughTx(d.tx)
				d.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(int64(9), nil).Once()
				d.repo.EXPECT().SaveItems(mock.Anything, int64(9), mock.Anything).Return([]int64{90}, nil).Once()
				d.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			check: func(t *testing.T, got entities.Order, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(9), got.ID)
				assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(150)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps(t)
			tc.mockBehavior(d)

			got, err := d.service().CreateOrder(context.Background(), tc.order, tc.caller)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.check != nil {
				tc.check(t, got, err)
			}
		})
	}
}

func TestOrderService_CreateOrder_DoesNotMutateInput(t *testing.T) {
	d := newTestDeps(t)
	d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
	passThroughTx(d.tx)
	d.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	d.repo.EXPECT().SaveItems(mock.Anything, int64(1), mock.Anything).Return([]int64{1}, nil).Once()
	d.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	submitted := entities.Order{Items: []entities.OrderItem{{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}}
	_, err := d.service().CreateOrder(context.Background(), submitted, alice)
	require.NoError(t, err)

	assert.True(t, submitted.Items[0].UnitPrice.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, submitted.Items[0].Product)
}

func TestOrderService_CreateOrder_RoundsToStorageScale(t *testing.T) {
	d := newTestDeps(t)
	subCent := entities.Product{ID: 3, Name: "Screw", Price: decimal.RequireFromString("0.335"), StockQuantity: 100}

	d.products.EXPECT().GetProduct(mock.Anything, int64(3)).Return(subCent, nil).Once()
	passThroughTx(d.tx)
	d.repo.EXPECT().
		SaveOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.TotalAmount.Equal(decimal.RequireFromString("1.02"))
		})).
		Return(int64(4), nil).Once()
	d.repo.EXPECT().
		SaveItems(mock.Anything, int64(4), mock.MatchedBy(func(items []entities.OrderItem) bool {
			return len(items) == 1 && items[0].UnitPrice.Equal(decimal.RequireFromString("0.34"))
		})).
		Return([]int64{40}, nil).Once()
	d.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	got, err := d.service().CreateOrder(context.Background(),
		entities.Order{Items: []entities.OrderItem{{ProductID: 3, Quantity: 3}}}, alice)
	require.NoError(t, err)

	// записанная сумма совпадает с суммой записанных позиций
	assert.True(t, got.TotalAmount.Equal(got.TotalAmount.Round(entities.MoneyScale)), got.TotalAmount.String())
	assert.True(t, got.TotalAmount.Equal(got.ComputeTotal()))
	assert.True(t, got.Items[0].UnitPrice.Equal(got.Items[0].UnitPrice.Round(entities.MoneyScale)))
}

func TestOrderService_CreateOrder_CommitFailureIsNotRetried(t *testing.T) {
	d := newTestDeps(t)
	commitErr := errors.New("commit: connection reset")

	d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
	d.tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			require.NoError(t, cb(ctx))
			return commitErr
		}).Once()
	d.repo.EXPECT().SaveOrder(mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	d.repo.EXPECT().SaveItems(mock.Anything, int64(1), mock.Anything).Return([]int64{1}, nil).Once()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	enricher := service.NewProductEnricher(logger, d.products, cache.NewLRUCache(16, time.Minute), 4)
	svc := service.NewOrderService(logger, d.tx, d.repo, d.products, enricher, d.publisher,
		service.WithRetry(utils.RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond}))

	_, err := svc.CreateOrder(context.Background(),
		entities.Order{Items: []entities.OrderItem{{ProductID: 1, Quantity: 1}}}, alice)
	assert.ErrorIs(t, err, commitErr)
}

func TestOrderService_GetOrder(t *testing.T) {
	type MockBehavior func(d testDeps)

	bobsOrder := entities.Order{
		ID:      5,
		OwnerID: "bob",
		Items:   []entities.OrderItem{{ID: 1, OrderID: 5, ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}

	testCases := []struct {
		name         string
		caller       identity.Identity
		mockBehavior MockBehavior
		wantErr      error
		wantProduct  bool
	}{
		{
			name:   "owner reads own order",
			caller: bob,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).Return(bobsOrder, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
			},
			wantProduct: true,
		},
		{
			name:   "other subject is denied",
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).Return(bobsOrder, nil).Once()
			},
			wantErr: entities.ErrAccessDenied,
		},
		{
			name:   "admin reads any order",
			caller: admin,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).Return(bobsOrder, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
			},
			wantProduct: true,
		},
		{
			name:   "not found is not retried",
			caller: bob,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name:   "product service down",
			caller: bob,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).Return(bobsOrder, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).
					Return(entities.Product{}, errors.New("timeout")).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps(t)
			tc.mockBehavior(d)

			got, err := d.service().GetOrder(context.Background(), 5, tc.caller)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), got.ID)
			require.Len(t, got.Items, 1)
			if tc.wantProduct {
				require.NotNil(t, got.Items[0].Product)
				assert.Equal(t, productA.Name, got.Items[0].Product.Name)
			} else {
				assert.Nil(t, got.Items[0].Product)
			}
		})
	}
}

func TestOrderService_GetOrder_AccessDeniedDetails(t *testing.T) {
	d := newTestDeps(t)
	d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).
		Return(entities.Order{ID: 5, OwnerID: "bob"}, nil).Once()

	_, err := d.service().GetOrder(context.Background(), 5, alice)

	var denied *entities.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, int64(5), denied.OrderID)
	assert.Equal(t, "alice", denied.SubjectID)
}

func TestOrderService_GetOrder_RetriesTransientErrors(t *testing.T) {
	d := newTestDeps(t)
	d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).
		Return(entities.Order{}, errors.New("connection reset")).Once()
	d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).
		Return(entities.Order{ID: 5, OwnerID: "alice"}, nil).Once()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	enricher := service.NewProductEnricher(logger, d.products, cache.NewLRUCache(4, time.Minute), 1)
	svc := service.NewOrderService(logger, d.tx, d.repo, d.products, enricher, d.publisher,
		service.WithRetry(utils.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond}))

	got, err := svc.GetOrder(context.Background(), 5, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
}

func TestOrderService_ListOrders(t *testing.T) {
	type MockBehavior func(d testDeps)

	orders := []entities.Order{
		{ID: 1, OwnerID: "alice", Items: []entities.OrderItem{{ProductID: 1, Quantity: 1}}},
		{ID: 2, OwnerID: "bob", Items: []entities.OrderItem{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}},
	}

	testCases := []struct {
		name         string
		caller       identity.Identity
		mockBehavior MockBehavior
		wantIDs      []int64
		wantEnriched bool
	}{
		{
			name:   "admin lists everything",
			caller: admin,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().ListOrders(mock.Anything).Return(orders, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(2)).Return(productB, nil).Once()
			},
			wantIDs:      []int64{1, 2},
			wantEnriched: true,
		},
		{
			name:   "subject lists own orders through store filter",
			caller: alice,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().ListOrdersByOwner(mock.Anything, "alice").Return(orders[:1], nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, int64(1)).Return(productA, nil).Once()
			},
			wantIDs:      []int64{1},
			wantEnriched: true,
		},
		{
			name:   "product service unreachable",
			caller: admin,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().ListOrders(mock.Anything).Return(orders, nil).Once()
				d.products.EXPECT().GetProduct(mock.Anything, mock.Anything).
					Return(entities.Product{}, &entities.RemoteServiceUnavailableError{Service: "product-service", Err: errors.New("dial tcp")})
			},
			wantIDs: []int64{1, 2},
		},
		{
			name:   "no orders",
			caller: bob,
			mockBehavior: func(d testDeps) {
				d.repo.EXPECT().ListOrdersByOwner(mock.Anything, "bob").Return([]entities.Order{}, nil).Once()
			},
			wantIDs: []int64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps(t)
			tc.mockBehavior(d)

			got, err := d.service().ListOrders(context.Background(), tc.caller)
			require.NoError(t, err)

			ids := make([]int64, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
				if !tc.caller.IsAdmin {
					assert.Equal(t, tc.caller.SubjectID, o.OwnerID)
				}
				for _, it := range o.Items {
					if tc.wantEnriched {
						assert.NotNil(t, it.Product)
					} else {
						assert.Nil(t, it.Product)
					}
				}
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestOrderService_ListOrders_StoreError(t *testing.T) {
	d := newTestDeps(t)
	dbError := errors.New("db error")
	d.repo.EXPECT().ListOrdersByOwner(mock.Anything, "alice").Return(nil, dbError).Once()

	_, err := d.service().ListOrders(context.Background(), alice)
	assert.ErrorIs(t, err, dbError)
}

func TestOrderService_UpdateOrder(t *testing.T) {
	type MockBehavior func(d testDeps)

	total := decimal.NewFromInt(42)

	testCases := []struct {
		name         string
		mockBehavior MockBehavior
		wantErr      error
	}{
		{
			name: "overwrites status and total",
			mockBehavior: func(d testDeps) {
				passThroughTx(d.tx)
				d.repo.EXPECT().UpdateOrder(mock.Anything, int64(5), entities.StatusCreated, total).Return(nil).Once()
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).
					Return(entities.Order{ID: 5, Status: entities.StatusCreated, TotalAmount: total}, nil).Once()
				d.publisher.EXPECT().
					Publish(mock.Anything, mock.MatchedBy(func(e entities.OrderEvent) bool {
						return e.Type == entities.EventOrderUpdated && e.Order.ID == 5
					})).
					Return(nil).Once()
			},
		},
		{
			name: "not found",
			mockBehavior: func(d testDeps) {
				passThroughTx(d.tx)
				d.repo.EXPECT().UpdateOrder(mock.Anything, int64(5), entities.StatusCreated, total).
					Return(entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps(t)
			tc.mockBehavior(d)

			got, err := d.service().UpdateOrder(context.Background(), 5, entities.StatusCreated, total)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entities.StatusCreated, got.Status)
			assert.True(t, got.TotalAmount.Equal(total))
		})
	}
}

func TestOrderService_DeleteOrder(t *testing.T) {
	type MockBehavior func(d testDeps)

	testCases := []struct {
		name         string
		mockBehavior MockBehavior
		wantErr      error
	}{
		{
			name: "deletes",
			mockBehavior: func(d testDeps) {
				passThroughTx(d.tx)
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).
					Return(entities.Order{ID: 5, OwnerID: "bob"}, nil).Once()
				d.repo.EXPECT().DeleteOrder(mock.Anything, int64(5)).Return(nil).Once()
				d.publisher.EXPECT().
					Publish(mock.Anything, mock.MatchedBy(func(e entities.OrderEvent) bool {
						return e.Type == entities.EventOrderDeleted && e.Order.OwnerID == "bob"
					})).
					Return(nil).Once()
			},
		},
		{
			name: "not found",
			mockBehavior: func(d testDeps) {
				passThroughTx(d.tx)
				d.repo.EXPECT().GetOrderByID(mock.Anything, int64(5)).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDeps(t)
			tc.mockBehavior(d)

			err := d.service().DeleteOrder(context.Background(), 5)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
