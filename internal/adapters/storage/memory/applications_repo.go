package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption/internal/domain/applications"
)

type ApplicationRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]applications.Application
	pets   *PetRepo
}

func NewApplicationRepo(pets *PetRepo) *ApplicationRepo {
	return &ApplicationRepo{
		byID: make(map[int64]applications.Application),
		pets: pets,
	}
}

func (r *ApplicationRepo) Create(ctx context.Context, a applications.Application) (applications.Application, error) {
	if _, err := r.pets.GetByID(ctx, a.PetID); err != nil {
		return applications.Application{}, applications.ErrPetNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id int64) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return applications.Application{}, applications.ErrNotFound
	}
	return a, nil
}

func (r *ApplicationRepo) ListByUser(ctx context.Context, userID string) ([]applications.WithPet, error) {
	r.mu.RLock()
	rows := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.UserID == userID {
			rows = append(rows, a)
		}
	}
	r.mu.RUnlock()

	out := make([]applications.WithPet, 0, len(rows))
	for _, a := range rows {
		p, err := r.pets.GetByID(ctx, a.PetID)
		if err != nil {
			continue
		}
		out = append(out, applications.WithPet{Application: a, Pet: p})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, a applications.Application) (applications.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; !ok {
		return applications.Application{}, applications.ErrNotFound
	}
	r.byID[a.ID] = a
	return a, nil
}
