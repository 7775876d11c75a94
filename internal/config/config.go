package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config agrupa todo lo que el proceso lee del entorno.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"pet-adoption"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Sin DB_DSN el servicio corre con repos in-memory (modo dev).
	DatabaseDSN    string `env:"DB_DSN"`
	DatabaseDriver string `env:"DB_DRIVER" envDefault:"pgx"`
	Migrate        bool   `env:"DB_MIGRATE" envDefault:"true"`

	Session struct {
		Store        string        `env:"SESSION_STORE" envDefault:"memory"`
		TTL          time.Duration `env:"SESSION_TTL" envDefault:"168h"`
		CookieName   string        `env:"SESSION_COOKIE" envDefault:"sid"`
		CookieSecure bool          `env:"SESSION_COOKIE_SECURE"`
		PurgeSpec    string        `env:"SESSION_PURGE_SPEC" envDefault:"@every 15m"`
	}

	RedisURL string `env:"REDIS_URL"`

	OIDC struct {
		UserInfoURL string        `env:"OIDC_USERINFO_URL"`
		Timeout     time.Duration `env:"OIDC_TIMEOUT" envDefault:"5s"`
	}

	RabbitMQ struct {
		URL            string `env:"RABBITMQ_URL"`
		SubmittedQueue string `env:"RABBITMQ_SUBMITTED_QUEUE" envDefault:"adoption.applications.submitted"`
		ReviewQueue    string `env:"RABBITMQ_REVIEW_QUEUE" envDefault:"adoption.applications.reviewed"`
	}

	S3 struct {
		Endpoint        string `env:"S3_ENDPOINT"`
		Region          string `env:"S3_REGION" envDefault:"us-east-1"`
		Bucket          string `env:"S3_BUCKET"`
		AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
		PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	}

	AdminUserIDs []string `env:"ADMIN_USER_IDS" envSeparator:","`
	EnableSeed   bool     `env:"ENABLE_SEED"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load lee .env si existe y después parsea el entorno.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be pgx or postgres, got %q", c.DatabaseDriver)
	}

	switch c.Session.Store {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return fmt.Errorf("SESSION_STORE=postgres requires DB_DSN")
		}
	case "redis":
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("SESSION_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be memory, postgres or redis, got %q", c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// S3Enabled indica si hay bucket configurado para imágenes.
func (c *Config) S3Enabled() bool {
	return strings.TrimSpace(c.S3.Bucket) != ""
}

func (c *Config) RabbitMQEnabled() bool {
	return strings.TrimSpace(c.RabbitMQ.URL) != ""
}

func (c *Config) OIDCEnabled() bool {
	return strings.TrimSpace(c.OIDC.UserInfoURL) != ""
}
