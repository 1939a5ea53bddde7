package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every configuration variable.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Storage backends the key-value store factory understands.
const (
	StorageBackendSQLite = "sqlite"
	StorageBackendRedis  = "redis"
	StorageBackendMemory = "memory"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
	Gateway  GatewayConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects and tunes the local key-value store backend.
type StorageConfig struct {
	Backend   string `envconfig:"STOREFRONT_STORAGE_BACKEND" default:"sqlite"`
	Path      string `envconfig:"STOREFRONT_STORAGE_PATH" default:"storefront.db"`
	Namespace string `envconfig:"STOREFRONT_STORAGE_NAMESPACE" default:"storefront"`
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StorageBackendSQLite, StorageBackendRedis, StorageBackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
	if strings.EqualFold(s.Backend, StorageBackendSQLite) && strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("sqlite storage requires STOREFRONT_STORAGE_PATH")
	}
	return nil
}

type RedisConfig struct {
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig carries the order totals policy.
type CheckoutConfig struct {
	TaxRateBasisPoints        int64  `envconfig:"STOREFRONT_CHECKOUT_TAX_RATE_BP" default:"800"`
	FreeShippingMinCents      int64  `envconfig:"STOREFRONT_CHECKOUT_FREE_SHIPPING_MIN_CENTS" default:"5000"`
	FlatShippingFeeCents      int64  `envconfig:"STOREFRONT_CHECKOUT_FLAT_SHIPPING_FEE_CENTS" default:"999"`
	GatewayMinimumCents       int64  `envconfig:"STOREFRONT_CHECKOUT_GATEWAY_MIN_CENTS" default:"100"`
	Currency                  string `envconfig:"STOREFRONT_CHECKOUT_CURRENCY" default:"USD"`
	OrderNumberPrefix         string `envconfig:"STOREFRONT_CHECKOUT_ORDER_NUMBER_PREFIX" default:"ORD"`
	AttemptExpirationOverride string `envconfig:"STOREFRONT_CHECKOUT_ATTEMPT_TTL"`
}

func (c CheckoutConfig) validate() error {
	if c.TaxRateBasisPoints < 0 {
		return fmt.Errorf("tax rate cannot be negative")
	}
	if c.FreeShippingMinCents < 0 || c.FlatShippingFeeCents < 0 {
		return fmt.Errorf("shipping thresholds cannot be negative")
	}
	if c.GatewayMinimumCents < 0 {
		return fmt.Errorf("gateway minimum cannot be negative")
	}
	if strings.TrimSpace(c.Currency) == "" {
		return fmt.Errorf("currency is required")
	}
	return nil
}

// AttemptTTL returns how long a checkout attempt stays confirmable.
func (c CheckoutConfig) AttemptTTL() time.Duration {
	if c.AttemptExpirationOverride == "" {
		return 30 * time.Minute
	}
	ttl, err := time.ParseDuration(c.AttemptExpirationOverride)
	if err != nil || ttl <= 0 {
		return 30 * time.Minute
	}
	return ttl
}

// GatewayConfig describes the external payment widget.
type GatewayConfig struct {
	Enabled      bool   `envconfig:"STOREFRONT_GATEWAY_ENABLED" default:"false"`
	KeyID        string `envconfig:"STOREFRONT_GATEWAY_KEY_ID"`
	MerchantName string `envconfig:"STOREFRONT_GATEWAY_MERCHANT_NAME" default:"Storefront"`
	ThemeColor   string `envconfig:"STOREFRONT_GATEWAY_THEME_COLOR" default:"#6366f1"`
}
