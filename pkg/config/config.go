package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "festivault"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App         AppConfig
	JWT         JWTConfig
	Session     SessionConfig
	Idempotency IdempotencyConfig
	CORS        CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FESTIVAULT_APP_ENV" default:"dev"`
	Port         string `envconfig:"FESTIVAULT_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"FESTIVAULT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FESTIVAULT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type JWTConfig struct {
	Secret            string `envconfig:"FESTIVAULT_JWT_SECRET" default:"festivault-dev-secret"`
	Issuer            string `envconfig:"FESTIVAULT_JWT_ISSUER" default:"festivault"`
	ExpirationMinutes int    `envconfig:"FESTIVAULT_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Expiration returns the access token TTL configured in minutes.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SessionConfig struct {
	// SnapshotDir is where per-session JSON snapshots are written after
	// each committed mutation. Empty keeps state memory-only.
	SnapshotDir      string `envconfig:"FESTIVAULT_SESSION_SNAPSHOT_DIR"`
	DefaultSessionID string `envconfig:"FESTIVAULT_SESSION_DEFAULT_ID" default:"default"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"FESTIVAULT_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FESTIVAULT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
