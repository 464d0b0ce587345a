package config

import (
	"fmt"

	pkgconfig "github.com/Pentakotacharan/shopmate-client/pkg/config"
)

// Config holds all configuration for the storefront client.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// ShopMate backend
	BackendURL string `env:"BACKEND_URL" envDefault:"http://localhost:5000"`

	// Login location handed to guarded routes
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`

	// Redis (persisted client state: identity and carts)
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	StorePrefix string `env:"STORE_PREFIX" envDefault:"shopmate"`

	// Cart TTL in hours (default: 30 days; 0 = never expire)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"720"`

	// Kafka domain events
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Cashfree mode, passed through to the payment surface
	CashfreeMode string `env:"CASHFREE_MODE" envDefault:"sandbox"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL must be set")
	}
	if c.CashfreeMode != "sandbox" && c.CashfreeMode != "production" {
		return fmt.Errorf("invalid cashfree mode: %s", c.CashfreeMode)
	}
	return nil
}
