package app

import (
	"context"
	"errors"
	"fmt"

	"pet-adoption/internal/adapters/messaging/rabbitmq"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/router"
)

// runWorker consume decisiones de revisión hasta que ctx se cancela.
func (a *App) runWorker(ctx context.Context) error {
	if a.rabbit == nil {
		return errors.New("worker mode requires RABBITMQ_URL")
	}

	svc := router.NewServices(a.backend).Applications
	if err := a.rabbit.ConsumeReviews(ctx, reviewHandler(svc, a.log)); err != nil {
		return fmt.Errorf("consume reviews: %w", err)
	}
	a.log.Info("worker stopped", nil)
	return nil
}

// reviewHandler: errores de dominio no se reintentan (se loguean y se
// confirma el mensaje); el resto vuelve a la cola.
func reviewHandler(svc *applications.Service, log logger.Logger) rabbitmq.ReviewHandler {
	return func(ctx context.Context, d applications.ReviewDecision) error {
		err := svc.HandleReviewDecision(ctx, d)
		switch {
		case err == nil:
			log.Info("review decision applied", map[string]any{"application_id": d.ApplicationID, "status": d.Status})
			return nil
		case errors.Is(err, applications.ErrNotFound),
			errors.Is(err, applications.ErrBadState),
			errors.Is(err, applications.ErrInvalidInput):
			log.Warn("review decision rejected", map[string]any{
				"application_id": d.ApplicationID,
				"status":         d.Status,
				"error":          err,
			})
			return nil
		default:
			return err
		}
	}
}
