package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Identity IdentityConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// IdentityConfig points at the external identity service. URL and ServiceKey
// have no defaults: the service must not come up without them.
type IdentityConfig struct {
	URL        string        `env:"IDENTITY_URL,         required"`
	ServiceKey string        `env:"IDENTITY_SERVICE_KEY, required"`
	Timeout    time.Duration `env:"IDENTITY_TIMEOUT,     default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pos_admin"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR,        default=localhost:6379"`
	DB         int           `env:"REDIS_DB,          default=0"`
	SessionTTL time.Duration `env:"REDIS_SESSION_TTL, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required values (identity endpoint and service credential) are
// startup failures, not per-request errors.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
