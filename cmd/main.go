package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/order-service/docs"
	"github.com/SergeyBogomolovv/order-service/internal/app"
	"github.com/SergeyBogomolovv/order-service/internal/config"
	"github.com/SergeyBogomolovv/order-service/internal/events"
	"github.com/SergeyBogomolovv/order-service/internal/handler"
	"github.com/SergeyBogomolovv/order-service/internal/postgres"
	"github.com/SergeyBogomolovv/order-service/internal/product"
	"github.com/SergeyBogomolovv/order-service/internal/repo"
	"github.com/SergeyBogomolovv/order-service/internal/service"
	"github.com/SergeyBogomolovv/order-service/pkg/cache"
	"github.com/SergeyBogomolovv/order-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Order Service API
// @version         1.0
// @description     Документация HTTP API
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)

	productClient := product.NewClient(logger, conf.ProductService)
	productCache := cache.NewLRUCache(conf.Enrich.CacheCapacity, conf.Enrich.CacheTTL)
	enricher := service.NewProductEnricher(logger, productClient, productCache, conf.Enrich.Concurrency)

	publisher := newPublisher(logger, conf.Kafka)

	orderService := service.NewOrderService(logger, txManager, orderRepo, productClient, enricher, publisher)

	handler.RegisterMetrics()

	application := app.New(logger, conf)

	// один сервис, несколько точек монтирования
	httpHandlers := make([]app.HTTPHandler, 0, len(conf.Http.BasePaths))
	for _, basePath := range conf.Http.BasePaths {
		httpHandlers = append(httpHandlers, handler.NewHTTPHandler(logger, orderService, basePath))
	}
	application.SetHTTPHandlers(httpHandlers...)
	application.SetStarters(productCache)
	application.SetClosers(publisher)

	panicIfErr("failed to start app", application.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", application.Stop())
}

func init() {
	godotenv.Load()
}

type publisher interface {
	service.EventPublisher
	Close() error
}

func newPublisher(logger *slog.Logger, cfg config.Kafka) publisher {
	if !cfg.Enabled {
		logger.Info("kafka disabled, order events are not published")
		return events.NoopPublisher{}
	}
	return events.NewKafkaPublisher(logger, cfg)
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
