// Package config loads service configuration from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Class grant sources
const (
	ClassSourceDB       = "db"
	ClassSourceDND5eAPI = "dnd5eapi"
)

// Config is the full server configuration
type Config struct {
	Port     int    `env:"PORT" envDefault:"50051"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseURL    string `env:"DATABASE_URL" envDefault:"file:rpg-builder.db?_pragma=foreign_keys(1)"`

	RedisURL   string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	ClassSource   string        `env:"CLASS_SOURCE" envDefault:"db"`
	DND5eAPIURL   string        `env:"DND5E_API_URL" envDefault:"https://www.dnd5eapi.co/api/2014/"`
	DND5eCacheTTL time.Duration `env:"DND5E_CACHE_TTL" envDefault:"24h"`

	OTelEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"rpg-builder"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enum-like fields and required values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("PORT", c.Port, 1, 65535, vb)
	errors.ValidateEnum("DATABASE_DRIVER", c.DatabaseDriver, []string{DriverPostgres, DriverSQLite}, vb)
	errors.ValidateRequired("DATABASE_URL", c.DatabaseURL, vb)
	errors.ValidateRequired("REDIS_URL", c.RedisURL, vb)
	errors.ValidateEnum("CLASS_SOURCE", c.ClassSource, []string{ClassSourceDB, ClassSourceDND5eAPI}, vb)
	if c.SessionTTL <= 0 {
		vb.InvalidField("SESSION_TTL", "must be positive")
	}

	return vb.Build()
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
