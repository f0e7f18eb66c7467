package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka

	Postgres Postgres `validate:"required"`

	ProductService ProductService `validate:"required"`

	Auth Auth

	Enrich Enrich
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`

	// каждый путь обслуживается отдельным экземпляром обработчика поверх общего ядра
	BasePaths []string `validate:"required,min=1,dive,startswith=/"`
}

type Kafka struct {
	Enabled bool
	Brokers []string `validate:"required_if=Enabled true,dive,hostname_port"`
	Topic   string   `validate:"required_if=Enabled true"`

	BatchTimeout time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type ProductService struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type Auth struct {
	Required bool
	// если пусто, подпись не проверяется: токен уже проверен на шлюзе
	JWTSecret string
}

type Enrich struct {
	Concurrency   int           `validate:"gte=1"`
	CacheCapacity int           `validate:"gte=1"`
	CacheTTL      time.Duration `validate:"gt=0"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host:      env("HOST", "localhost"),
			Port:      env("PORT", "8080"),
			BasePaths: envList("HTTP_BASE_PATHS", "/api/orders,/api/commandes"),
		},

		Cors: CORS{
			AllowedOrigins: envList("ALLOWED_CORS_ORIGINS", "http://localhost:4200"),
		},

		Kafka: Kafka{
			Enabled: envBool("KAFKA_ENABLED", false),
			Topic:   env("KAFKA_TOPIC", "order-events"),
			Brokers: envList("KAFKA_BROKERS", "localhost:9092"),

			BatchTimeout: envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "orders"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		ProductService: ProductService{
			BaseURL: env("PRODUCT_SERVICE_URL", "http://product-service:8081"),
			Timeout: envDuration("PRODUCT_SERVICE_TIMEOUT", 5*time.Second),
		},

		Auth: Auth{
			Required:  envBool("AUTH_REQUIRED", true),
			JWTSecret: env("AUTH_JWT_SECRET", ""),
		},

		Enrich: Enrich{
			Concurrency:   envInt("ENRICH_CONCURRENCY", 8),
			CacheCapacity: envInt("PRODUCT_CACHE_CAPACITY", 1000),
			CacheTTL:      envDuration("PRODUCT_CACHE_TTL", time.Minute),
		},
	}
}

var ErrNoJWTSecret = errors.New("AUTH_JWT_SECRET is required in production")

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	// без секрета любой может выпустить себе токен с ролью ADMIN
	if c.Env == "production" && c.Auth.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	return nil
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envList(key string, fallback string) []string {
	var res []string
	for _, v := range strings.Split(env(key, fallback), ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
