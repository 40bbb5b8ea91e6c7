package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	Environment       string        `env:"APP_ENV" envDefault:"development"`
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	AutoMigrate       bool          `env:"AUTO_MIGRATE" envDefault:"false"`
	AdminEmail        string        `env:"ADMIN_EMAIL"`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	RedisAddr         string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	CachePrefix       string        `env:"CACHE_PREFIX" envDefault:"codegrant"`
	StoreTimeout      time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`
	JWTSecret         string        `env:"JWT_SECRET"`
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	PendingRequestTTL time.Duration `env:"PENDING_REQUEST_TTL" envDefault:"10m"`
	AuthCodeTTL       time.Duration `env:"AUTH_CODE_TTL" envDefault:"10m"`
	ClientCacheTTL    time.Duration `env:"CLIENT_CACHE_TTL" envDefault:"10m"`
	ServiceName       string        `env:"SERVICE_NAME" envDefault:"codegrant"`
	TelemetryEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TelemetryInsecure bool          `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	TraceSampleRatio  float64       `env:"OTEL_TRACES_SAMPLER_RATIO" envDefault:"1"`
	CORSOrigins       []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads configuration from the environment, after loading .env when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if (strings.TrimSpace(c.AdminEmail) == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = 3 * time.Second
	}
	c.CachePrefix = strings.TrimSuffix(strings.TrimSpace(c.CachePrefix), ":")
	return nil
}
