package config

import (
	"fmt"
	"os"
	"path/filepath"

	pkgconfig "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Backend
	APIBaseURL     string `env:"SR_API_URL" envDefault:"http://127.0.0.1:8000"`
	RequestTimeout int    `env:"SR_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`

	// Local store. Driver "file" keeps everything in a JSON document under
	// the state directory; "redis" shares state across kiosk terminals.
	StoreDriver string `env:"SR_STORE_DRIVER" envDefault:"file"`
	StorePath   string `env:"SR_STORE_PATH"`
	RedisAddr   string `env:"SR_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"SR_REDIS_PASSWORD"`
	RedisDB     int    `env:"SR_REDIS_DB" envDefault:"0"`
	RedisTTL    int    `env:"SR_REDIS_TTL_HOURS" envDefault:"0"`

	// Ops listener (health, metrics). Loopback only by default.
	OpsEnabled bool   `env:"SR_OPS_ENABLED" envDefault:"true"`
	OpsAddr    string `env:"SR_OPS_ADDR" envDefault:"127.0.0.1:9180"`

	// Tracing
	TracingEnabled bool   `env:"SR_TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"SR_OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("SR_API_URL must not be empty")
	}
	if cfg.StoreDriver != "file" && cfg.StoreDriver != "redis" {
		return nil, fmt.Errorf("invalid store driver %q (want file or redis)", cfg.StoreDriver)
	}
	if cfg.RequestTimeout < 1 {
		return nil, fmt.Errorf("invalid request timeout: %d", cfg.RequestTimeout)
	}

	if cfg.StorePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for store path: %w", err)
		}
		cfg.StorePath = filepath.Join(home, ".saborreal", "storefront.json")
	}

	return cfg, nil
}
