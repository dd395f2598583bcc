// Package config holds the settings of the authctl client.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// BackendURL is the base URL of the portal API.
	BackendURL     string        `env:"BACKEND_URL,     default=http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
	LogLevel       string        `env:"LOG_LEVEL,       default=warn"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
