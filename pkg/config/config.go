package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "STORE"

type Config struct {
	Catalog   CatalogConfig
	Checkout  CheckoutConfig
	Gateway   GatewayConfig
	Cart      CartConfig
	Shop      ShopConfig
	Redis     RedisConfig
	Metrics   MetricsConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type CatalogConfig struct {
	Port string `envconfig:"STORE_CATALOG_PORT" default:"8082"`

	// Store selects the product store backend: "memory" or "postgres".
	Store string `envconfig:"STORE_CATALOG_STORE" default:"memory"`
	DSN   string `envconfig:"STORE_CATALOG_DSN"`
}

type CheckoutConfig struct {
	Port       string `envconfig:"STORE_CHECKOUT_PORT" default:"8083"`
	CatalogURL string `envconfig:"STORE_CATALOG_URL" default:"http://localhost:8082"`
}

type GatewayConfig struct {
	Port        string `envconfig:"STORE_GATEWAY_PORT" default:"8080"`
	CatalogURL  string `envconfig:"STORE_CATALOG_URL" default:"http://catalog:8082"`
	CheckoutURL string `envconfig:"STORE_CHECKOUT_URL" default:"http://checkout:8083"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"STORE_METRICS_ENABLED" default:"false"`
	Token   string `envconfig:"STORE_METRICS_TOKEN"`
}

type CartConfig struct {
	// Slot selects the durable cart medium: "file" or "redis".
	Slot string `envconfig:"STORE_CART_SLOT" default:"file"`
	File string `envconfig:"STORE_CART_FILE" default:".cart.json"`

	// ClientID namespaces the redis slot so independent clients do not
	// share a cart.
	ClientID string `envconfig:"STORE_CART_CLIENT_ID" default:"default"`
}

type ShopConfig struct {
	GatewayURL string `envconfig:"STORE_SHOP_GATEWAY_URL" default:"http://localhost:8080"`
}

type RedisConfig struct {
	Addr     string `envconfig:"STORE_REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"STORE_REDIS_PASSWORD"`
	DB       int    `envconfig:"STORE_REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	CheckoutLimit  int           `envconfig:"STORE_CHECKOUT_RATE_LIMIT" default:"10"`
	CheckoutWindow time.Duration `envconfig:"STORE_CHECKOUT_RATE_WINDOW" default:"1m"`
}
