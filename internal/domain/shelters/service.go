package shelters

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("shelter not found")
	ErrConflict     = errors.New("shelter already exists")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Location    string
	Address     string
	Phone       string
	Email       string
	Website     string
	Rating      *float64
	ReviewCount int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Shelter, error) {
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || location == "" {
		return Shelter{}, fmt.Errorf("%w: name and location are required", ErrInvalidInput)
	}
	if in.ReviewCount < 0 {
		return Shelter{}, fmt.Errorf("%w: reviewCount must be >= 0", ErrInvalidInput)
	}

	var rating *float64
	if in.Rating != nil {
		r := *in.Rating
		// numeric(2,1): 0.0 .. 9.9, pero el dominio usa 1..5.
		if r < 0 || r > 5 {
			return Shelter{}, fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidInput)
		}
		r = math.Round(r*10) / 10
		rating = &r
	}

	return s.repo.Create(ctx, Shelter{
		Name:        name,
		Location:    location,
		Address:     strings.TrimSpace(in.Address),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Website:     strings.TrimSpace(in.Website),
		Rating:      rating,
		ReviewCount: in.ReviewCount,
		CreatedAt:   s.now().UTC(),
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (Shelter, error) {
	if id <= 0 {
		return Shelter{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Shelter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Shelter{}, ErrNotFound
	}
	return s.repo.GetByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]Shelter, error) {
	return s.repo.List(ctx)
}
