package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("application not found")
	// ErrPetNotFound: la solicitud apunta a un pet inexistente.
	ErrPetNotFound = errors.New("pet not found")
	// ErrUserNotFound: el usuario de la sesión no tiene fila en users.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadState: transición fuera de pending -> approved|rejected.
	ErrBadState = errors.New("invalid status transition")
)

type PetLookup interface {
	GetByID(ctx context.Context, id int64) (pets.Pet, error)
}

// Publisher avisa a los revisores. Opcional.
type Publisher interface {
	PublishSubmitted(ctx context.Context, ev SubmittedEvent) error
}

type Service struct {
	repo      Repository
	pets      PetLookup
	publisher Publisher
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, pets PetLookup) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		log:  logger.NewNop(),
		now:  time.Now,
	}
}

// WithPublisher habilita el evento application.submitted.
func (s *Service) WithPublisher(p Publisher, log logger.Logger) *Service {
	s.publisher = p
	if log != nil {
		s.log = log
	}
	return s
}

func (s *Service) List(ctx context.Context, userID string) ([]WithPet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	return s.repo.ListByUser(ctx, userID)
}

type CreateInput struct {
	UserID         string
	PetID          int64
	Message        string
	ContactInfo    map[string]any
	ExperienceInfo map[string]any
}

// Create no valida que el pet esté available; solo que exista.
func (s *Service) Create(ctx context.Context, in CreateInput) (Application, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return Application{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if in.PetID <= 0 {
		return Application{}, fmt.Errorf("%w: petId must be a positive integer", ErrInvalidInput)
	}

	if _, err := s.pets.GetByID(ctx, in.PetID); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Application{}, ErrPetNotFound
		}
		return Application{}, err
	}

	now := s.now().UTC()
	a, err := s.repo.Create(ctx, Application{
		UserID:         userID,
		PetID:          in.PetID,
		Status:         StatusPending,
		Message:        strings.TrimSpace(in.Message),
		ContactInfo:    nonNil(in.ContactInfo),
		ExperienceInfo: nonNil(in.ExperienceInfo),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return Application{}, err
	}
	metrics.RecordApplication("created", string(a.Status))

	// best effort: la solicitud ya quedó guardada
	if s.publisher != nil {
		ev := SubmittedEvent{ApplicationID: a.ID, UserID: a.UserID, PetID: a.PetID, SubmittedAt: a.CreatedAt}
		if err := s.publisher.PublishSubmitted(ctx, ev); err != nil {
			s.log.Warn("publish application.submitted failed", map[string]any{
				"error":          err,
				"application_id": a.ID,
			})
		}
	}
	return a, nil
}

// UpdateStatus aplica la máquina de estados. Reaplicar el mismo estado es no-op.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Application, error) {
	next := Status(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return Application{}, fmt.Errorf("%w: status must be one of pending, approved, rejected", ErrInvalidInput)
	}
	if id <= 0 {
		return Application{}, ErrNotFound
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}

	if a.Status == next {
		return a, nil
	}
	if a.Status.Terminal() || next == StatusPending {
		return Application{}, fmt.Errorf("%w: %s -> %s", ErrBadState, a.Status, next)
	}

	a.Status = next
	a.UpdatedAt = s.now().UTC()
	out, err := s.repo.Update(ctx, a)
	if err != nil {
		return Application{}, err
	}
	metrics.RecordApplication("reviewed", string(out.Status))
	return out, nil
}

// HandleReviewDecision es el punto de entrada del consumer de revisiones.
func (s *Service) HandleReviewDecision(ctx context.Context, d ReviewDecision) error {
	_, err := s.UpdateStatus(ctx, d.ApplicationID, d.Status)
	return err
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
