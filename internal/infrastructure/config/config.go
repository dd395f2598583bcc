package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,        default=8080"`
	Env         string        `env:"ENV,         default=development"`
	LogLevel    string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret   string        `env:"JWT_SECRET,  default=dev-secret-change-me"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,   default=24h"`
	FrontendURL string        `env:"FRONTEND_URL, default=http://localhost:3000"`

	// AdminAuthEnabled puts /api/admin behind JWT + admin role.
	AdminAuthEnabled bool `env:"ADMIN_AUTH_ENABLED, default=false"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
}

// StoreConfig picks a backend per store: memory, mongo or redis.
type StoreConfig struct {
	Jobs  string `env:"JOB_STORE,  default=memory"`
	Users string `env:"USER_STORE, default=memory"`
	Codes string `env:"CODE_STORE, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=codeblaze"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MailConfig struct {
	Provider       string `env:"MAIL_PROVIDER,    default=log"`
	From           string `env:"MAIL_FROM,        default=no-reply@codeblaze.dev"`
	FromName       string `env:"MAIL_FROM_NAME,   default=CodeBlaze"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	Workers        int    `env:"MAIL_WORKERS,     default=4"`
}

// NeedsMongo reports whether any store is backed by MongoDB.
func (c *Config) NeedsMongo() bool {
	return c.Store.Jobs == "mongo" || c.Store.Users == "mongo"
}

// NeedsRedis reports whether any store is backed by Redis.
func (c *Config) NeedsRedis() bool {
	return c.Store.Codes == "redis"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for name, v := range map[string]string{"JOB_STORE": c.Store.Jobs, "USER_STORE": c.Store.Users} {
		if v != "memory" && v != "mongo" {
			return fmt.Errorf("config: %s must be memory or mongo, got %q", name, v)
		}
	}
	if c.Store.Codes != "memory" && c.Store.Codes != "redis" {
		return fmt.Errorf("config: CODE_STORE must be memory or redis, got %q", c.Store.Codes)
	}
	if c.Env == "production" && c.JWTSecret == "dev-secret-change-me" {
		return fmt.Errorf("config: JWT_SECRET must be set in production")
	}
	return nil
}
