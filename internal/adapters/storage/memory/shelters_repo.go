package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pet-adoption/internal/domain/shelters"
)

type ShelterRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]shelters.Shelter
}

func NewShelterRepo() *ShelterRepo {
	return &ShelterRepo{
		byID: make(map[int64]shelters.Shelter),
	}
}

func (r *ShelterRepo) Create(ctx context.Context, s shelters.Shelter) (shelters.Shelter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.findByName(s.Name); ok {
		return shelters.Shelter{}, shelters.ErrConflict
	}

	r.nextID++
	s.ID = r.nextID
	r.byID[s.ID] = s
	return s, nil
}

func (r *ShelterRepo) GetByID(ctx context.Context, id int64) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, nil
}

func (r *ShelterRepo) GetByName(ctx context.Context, name string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.findByName(name)
	if !ok {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, nil
}

// findByName asume el lock tomado.
func (r *ShelterRepo) findByName(name string) (shelters.Shelter, bool) {
	for _, s := range r.byID {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return shelters.Shelter{}, false
}

// List ordena por nombre, igual que el repo postgres.
func (r *ShelterRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelters.Shelter, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
