package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"pet-adoption/internal/adapters/auth/oidc"
	"pet-adoption/internal/adapters/blob/s3"
	"pet-adoption/internal/adapters/messaging/rabbitmq"
	pg "pet-adoption/internal/adapters/storage/postgres"
	rstore "pet-adoption/internal/adapters/storage/redis"
	"pet-adoption/internal/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"
)

// App tiene los recursos compartidos del proceso. Se arma una vez y
// Shutdown los cierra.
type App struct {
	cfg *config.Config
	log logger.Logger

	db     *sqlx.DB
	redis  *goredis.Client
	rabbit *rabbitmq.Client

	backend  router.Backend
	verifier auth.AuthVerifier
	images   *s3.ImageStore
}

// New abre solo lo que está configurado. Sin DB_DSN queda todo in-memory.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	if err := a.open(ctx); err != nil {
		if closeErr := a.Shutdown(); closeErr != nil {
			log.Warn("partial shutdown failed", map[string]any{"error": closeErr})
		}
		return nil, err
	}
	return a, nil
}

func (a *App) open(ctx context.Context) error {
	cfg := a.cfg

	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		a.db = db
		a.log.Info("database connected", map[string]any{"driver": cfg.DatabaseDriver})

		if cfg.Migrate {
			if err := pg.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a.log.Info("migrations applied", nil)
		}
	} else {
		a.log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	if cfg.RedisURL != "" {
		rdb, err := rstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("open redis: %w", err)
		}
		a.redis = rdb
	}

	backend, err := router.NewBackend(a.db, a.redis, cfg.Session.Store)
	if err != nil {
		return err
	}
	a.backend = backend

	if cfg.OIDCEnabled() {
		v, err := oidc.NewVerifier(oidc.Config{UserInfoURL: cfg.OIDC.UserInfoURL, Timeout: cfg.OIDC.Timeout})
		if err != nil {
			return fmt.Errorf("oidc verifier: %w", err)
		}
		a.verifier = v
	}

	if cfg.RabbitMQEnabled() {
		c, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:            cfg.RabbitMQ.URL,
			SubmittedQueue: cfg.RabbitMQ.SubmittedQueue,
			ReviewQueue:    cfg.RabbitMQ.ReviewQueue,
		}, a.log)
		if err != nil {
			return fmt.Errorf("rabbitmq: %w", err)
		}
		a.rabbit = c
	}

	if cfg.S3Enabled() {
		store, err := s3.NewImageStore(ctx, s3.Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("s3: %w", err)
		}
		a.images = store
	}
	return nil
}

// Run bloquea hasta SIGINT/SIGTERM o hasta que el modo termine con error.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info("starting", map[string]any{"mode": mode})

	var err error
	switch mode {
	case ModeServer:
		err = a.runServer(ctx)
	case ModeWorker:
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("unknown mode %q (use server or worker)", mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.log.Error("shutdown failed", map[string]any{"error": closeErr})
	}
	return err
}

// Shutdown cierra DB, redis y rabbit. Se puede llamar más de una vez.
func (a *App) Shutdown() error {
	var errs []error
	if a.rabbit != nil {
		errs = append(errs, a.rabbit.Close())
		a.rabbit = nil
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
		a.redis = nil
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	return errors.Join(errs...)
}
