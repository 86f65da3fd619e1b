// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types and
// validates that required values are present so the service fails
// fast on bad or missing configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values.
//   - Provide defaults for optional blocks (observability, auth TTL, rate limit).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before
	// anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
//
// Keys are normalized (prefix removed, lowercased) and nested with ".":
//
//	FILMS_SERVER.PORT                       -> server.port                       -> Config.Server.Port
//	FILMS_DATABASE.SSL_MODE                 -> database.ssl_mode                 -> Config.Database.SSLMode
//	FILMS_OBSERVABILITY.LOGGING.LEVEL       -> observability.logging.level       -> Config.Observability.Logging.Level
//
// Underscores inside a segment are kept, so only "." introduces nesting.
const EnvPrefix = "FILMS_"

// ServiceName tags logs, traces and metrics emitted by this service.
const ServiceName = "films-api"

// Config is the root configuration object for the application.
//
// Structure:
//   - Primary: runtime environment (development, production, ...).
//   - Server: HTTP listener, timeouts, CORS and rate limiting.
//   - Database: PostgreSQL connection and pool settings.
//   - Redis: the Asynq job queue backend.
//   - Auth: bearer token signing.
//   - Integration: optional third-party providers.
//   - Observability: telemetry and dependency health checks.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained number of requests per second allowed per
	// client IP. Zero means DefaultRateLimit.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
}

// DefaultRateLimit is applied when server.rate_limit is not configured.
const DefaultRateLimit = 20

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the bearer token settings.
//
// SecretKey signs and verifies issued tokens (HS256), so it must be kept
// out of version control like any other credential.
type AuthConfig struct {
	SecretKey string        `koanf:"secret_key" validate:"required,min=16"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// DefaultTokenTTL is the lifetime of an issued token when auth.token_ttl
// is not set.
const DefaultTokenTTL = 30 * time.Minute

// IntegrationConfig holds credentials for third-party providers.
// Every field is optional; a missing key disables the integration.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// DSN builds the postgres URL for the configured database.
//
// The password is URL-escaped and IPv6 hosts are bracketed:
//
//	user "films", password "pa:ss@word", host "::1", port 5432, db "films", sslmode "disable"
//	=> postgres://films:pa%3Ass%40word@[::1]:5432/films?sslmode=disable
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		d.Name,
		d.SSLMode,
	)
}

// LoadConfig builds the Config from the process environment.
//
// Flow:
//  1. godotenv/autoload has already merged `.env` into the environment.
//  2. Every FILMS_ variable is loaded into koanf under its normalized key.
//  3. fromKoanf unmarshals, validates and applies defaults.
//
// Any failure is returned wrapped; main treats it as fatal.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	return fromKoanf(k)
}

// fromKoanf decodes, validates and defaults the configuration held by k.
func fromKoanf(k *koanf.Koanf) (*Config, error) {
	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional settings after validation.
//
// Rules:
//   - A missing observability block becomes DefaultObservabilityConfig().
//   - Observability.ServiceName is always ServiceName.
//   - Observability.Environment always follows primary.env.
//   - A non-positive auth.token_ttl becomes DefaultTokenTTL.
//   - A zero server.rate_limit becomes DefaultRateLimit.
func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
}
