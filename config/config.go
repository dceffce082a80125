// Package config loads the service configuration from YAML and the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
// Sources are tried in order:
//  1. the path passed to Load (the --config flag);
//  2. the CONFIG_PATH environment variable;
//  3. ./local.yaml in the working directory;
//  4. environment variables only.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Analytics  AnalyticsConfig  `yaml:"analytics"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	Auth       AuthConfig       `yaml:"auth"`
	CORS       CORSConfig       `yaml:"cors"`
	Limits     LimitsConfig     `yaml:"limits"`
	Log        LogConfig        `yaml:"log"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Addr returns host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DatabaseConfig selects the row store. Driver is one of postgres (lib/pq),
// pgx or sqlite.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"DATABASE_DRIVER" env-default:"postgres"`
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME" env-default:"5m"`
}

// AnalyticsConfig selects where page-view events live: sql (same database as
// the content) or clickhouse.
type AnalyticsConfig struct {
	Backend string `yaml:"backend" env:"ANALYTICS_BACKEND" env-default:"sql"`
}

type ClickHouseConfig struct {
	Host     string `yaml:"host" env:"CLICKHOUSE_HOST"`
	Port     int    `yaml:"port" env:"CLICKHOUSE_NATIVE_PORT" env-default:"9000"`
	Database string `yaml:"database" env:"CLICKHOUSE_DB_NAME" env-default:"default"`
	Username string `yaml:"username" env:"CLICKHOUSE_USERNAME" env-default:"default"`
	Password string `yaml:"password" env:"CLICKHOUSE_PASSWORD"`
}

type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
	CookieName   string        `yaml:"cookie_name" env:"AUTH_COOKIE_NAME" env-default:"jwt_token"`
	CookieSecure bool          `yaml:"cookie_secure" env:"AUTH_COOKIE_SECURE" env-default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"FE_ORIGIN" env-separator:"," env-default:"http://localhost:3000"`
}

// LimitsConfig bounds list responses.
type LimitsConfig struct {
	MaxPageSize int `yaml:"max_page_size" env:"MAX_PAGE_SIZE" env-default:"100"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the configuration using the source priority documented on Config.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "pgx":
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for driver %s", c.Database.Driver)
		}
	case "sqlite":
		if c.Database.URL == "" {
			c.Database.URL = "file:folio.db?_pragma=foreign_keys(1)"
		}
	default:
		return fmt.Errorf("database.driver must be postgres, pgx or sqlite, got %q", c.Database.Driver)
	}

	switch c.Analytics.Backend {
	case "sql":
	case "clickhouse":
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host is required when analytics.backend is clickhouse")
		}
	default:
		return fmt.Errorf("analytics.backend must be sql or clickhouse, got %q", c.Analytics.Backend)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0")
	}
	if c.Limits.MaxPageSize <= 0 {
		return fmt.Errorf("limits.max_page_size must be > 0")
	}
	return nil
}
