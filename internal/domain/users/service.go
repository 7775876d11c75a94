package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/platform/validation"
	"pet-adoption/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrConflict     = errors.New("email already in use")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// UpsertInput: nil = conservar el valor guardado.
type UpsertInput struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	Location        *string
}

func (s *Service) Upsert(ctx context.Context, in UpsertInput) (User, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return User{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	u, err := s.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		u = User{ID: id, CreatedAt: now}
	case err != nil:
		return User{}, err
	}

	apply(&u.Email, in.Email)
	apply(&u.FirstName, in.FirstName)
	apply(&u.LastName, in.LastName)
	apply(&u.ProfileImageURL, in.ProfileImageURL)
	apply(&u.Location, in.Location)

	if u.Email != "" {
		if err := validation.Var("email", u.Email, "email"); err != nil {
			return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	u.UpdatedAt = now
	return s.repo.Upsert(ctx, u)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// SyncFromClaims implementa auth.UserSyncer: los claims vacíos no pisan el perfil.
// Si el usuario ya existe y los claims no traen nada nuevo no se escribe.
func (s *Service) SyncFromClaims(ctx context.Context, c auth.Claims) error {
	if u, err := s.repo.GetByID(ctx, strings.TrimSpace(c.UserID)); err == nil && unchanged(u, c) {
		return nil
	}

	_, err := s.Upsert(ctx, UpsertInput{
		ID:              c.UserID,
		Email:           optional(c.Email),
		FirstName:       optional(c.FirstName),
		LastName:        optional(c.LastName),
		ProfileImageURL: optional(c.ProfileImageURL),
	})
	return err
}

func unchanged(u User, c auth.Claims) bool {
	same := func(stored, claim string) bool {
		claim = strings.TrimSpace(claim)
		return claim == "" || claim == stored
	}
	return same(u.Email, c.Email) &&
		same(u.FirstName, c.FirstName) &&
		same(u.LastName, c.LastName) &&
		same(u.ProfileImageURL, c.ProfileImageURL)
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func optional(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
