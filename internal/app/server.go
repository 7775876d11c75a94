package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"

	"github.com/robfig/cron/v3"
)

const limiterIdle = 10 * time.Minute

func (a *App) runServer(ctx context.Context) error {
	limiter := middleware.NewRateLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst, a.log)

	opts := router.Options{
		Config:       a.cfg,
		Log:          a.log,
		Backend:      a.backend,
		AuthVerifier: a.verifier,
		RateLimiter:  limiter,
	}
	// Asignar un *T nil a la interfaz la haría no-nil.
	if a.rabbit != nil {
		opts.Publisher = a.rabbit
	}
	if a.images != nil {
		opts.Images = a.images
	}

	jobs, err := a.startJobs(ctx, limiter)
	if err != nil {
		return err
	}
	defer func() {
		<-jobs.Stop().Done()
	}()

	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down http server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.log.Info("http server stopped", nil)
	return nil
}

// startJobs agenda la purga de sesiones vencidas y la limpieza del limiter.
func (a *App) startJobs(ctx context.Context, limiter *middleware.RateLimiter) (*cron.Cron, error) {
	c := cron.New()

	spec := a.cfg.Session.PurgeSpec
	if spec == "" {
		spec = "@every 15m"
	}
	if _, err := c.AddFunc(spec, func() { purgeSessions(ctx, a.backend.Sessions, a.log) }); err != nil {
		return nil, fmt.Errorf("schedule session purge %q: %w", spec, err)
	}
	if _, err := c.AddFunc("@every 5m", func() {
		if n := limiter.Cleanup(limiterIdle); n > 0 {
			a.log.Debug("rate limiter cleanup", map[string]any{"removed": n})
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule limiter cleanup: %w", err)
	}

	c.Start()
	return c, nil
}

func purgeSessions(ctx context.Context, store auth.SessionStore, log logger.Logger) int64 {
	if store == nil {
		return 0
	}
	n, err := store.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Error("session purge failed", map[string]any{"error": err})
		return 0
	}
	if n > 0 {
		metrics.RecordSessionsPurged(n)
		log.Info("expired sessions purged", map[string]any{"count": n})
	}
	return n
}
