package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string `env:"PORT" envDefault:"3000"`

	// Database configuration
	DBType            string `env:"DB_TYPE" envDefault:"sqlite"` // mysql, postgres, sqlite, sqlite3, sqlserver
	DBHost            string `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string `env:"DB_PORT" envDefault:"5432"`
	DBDatabase        string `env:"DB_DATABASE"`
	DBUser            string `env:"DB_USER"`
	DBPassword        string `env:"DB_PASSWORD"`
	DBConnectionLimit int    `env:"DB_CONNECTION_LIMIT" envDefault:"5"`
	DBLogLevel        string `env:"DB_LOG_LEVEL" envDefault:"warn"` // silent, error, warn, info

	// Access token verification
	AuthSecret string `env:"AUTH_JWT_SECRET"`
	AuthIssuer string `env:"AUTH_JWT_ISSUER"`
	AuthzURL   string `env:"AUTHZ_URL"` // optional, pinged by the health check

	// Data access behavior
	OwnerColumn      string `env:"OWNER_COLUMN" envDefault:"owner_id"`
	OptimisticWrites bool   `env:"OPTIMISTIC_WRITES" envDefault:"false"`
	WriteLog         bool   `env:"WRITE_LOG" envDefault:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, errors.New("DB_DATABASE is required")
	}
	if !cfg.IsSQLite() && cfg.DBUser == "" {
		return nil, errors.New("DB_USER is required")
	}
	if cfg.AuthSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	if strings.TrimSpace(cfg.OwnerColumn) == "" {
		return nil, errors.New("OWNER_COLUMN must not be blank")
	}
	if cfg.DBConnectionLimit < 1 {
		return nil, fmt.Errorf("DB_CONNECTION_LIMIT must be positive, got %d", cfg.DBConnectionLimit)
	}

	return cfg, nil
}

// LoadFile reads a .env file into the process environment, then loads.
// Variables already set in the environment win.
func LoadFile(paths ...string) (*Config, error) {
	if err := godotenv.Load(paths...); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return Load()
}

// IsSQLite reports whether the configured database is a SQLite file
func (c *Config) IsSQLite() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite3"
}
