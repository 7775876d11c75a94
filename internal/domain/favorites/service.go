package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound: el pet referenciado no existe.
	ErrNotFound = errors.New("pet not found")
	// ErrUserNotFound: el usuario de la sesión no tiene fila en users.
	ErrUserNotFound = errors.New("user not found")
)

type PetLookup interface {
	GetByID(ctx context.Context, id int64) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetLookup
	now  func() time.Time
}

func NewService(repo Repository, pets PetLookup) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]WithPet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	return s.repo.ListByUser(ctx, userID)
}

// Add es idempotente: repetir el par devuelve la fila existente con created=false.
func (s *Service) Add(ctx context.Context, userID string, petID int64) (Favorite, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Favorite{}, false, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if petID <= 0 {
		return Favorite{}, false, fmt.Errorf("%w: petId must be a positive integer", ErrInvalidInput)
	}

	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			metrics.RecordFavorite("add", "pet_not_found")
			return Favorite{}, false, ErrNotFound
		}
		return Favorite{}, false, err
	}

	f, created, err := s.repo.Add(ctx, Favorite{
		UserID:    userID,
		PetID:     petID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			metrics.RecordFavorite("add", "pet_not_found")
		case errors.Is(err, ErrUserNotFound):
			metrics.RecordFavorite("add", "user_not_found")
		}
		return Favorite{}, false, err
	}

	if created {
		metrics.RecordFavorite("add", "created")
	} else {
		metrics.RecordFavorite("add", "existing")
	}
	return f, created, nil
}

func (s *Service) Remove(ctx context.Context, userID string, petID int64) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if petID <= 0 {
		return fmt.Errorf("%w: petId must be a positive integer", ErrInvalidInput)
	}
	if err := s.repo.Remove(ctx, userID, petID); err != nil {
		return err
	}
	metrics.RecordFavorite("remove", "ok")
	return nil
}

func (s *Service) IsFavorite(ctx context.Context, userID string, petID int64) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || petID <= 0 {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, petID)
}
