package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/domain/pets"
)

type PetRepo struct {
	mu       sync.RWMutex
	nextID   int64
	byID     map[int64]pets.Pet
	shelters *ShelterRepo
}

func NewPetRepo(shelters *ShelterRepo) *PetRepo {
	return &PetRepo{
		byID:     make(map[int64]pets.Pet),
		shelters: shelters,
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	if _, err := r.shelters.GetByID(ctx, p.ShelterID); err != nil {
		return pets.Pet{}, fmt.Errorf("%w: shelter %d does not exist", pets.ErrInvalidInput, p.ShelterID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	p = clonePet(p)
	r.byID[p.ID] = p
	return clonePet(p), nil
}

func (r *PetRepo) Update(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return pets.Pet{}, pets.ErrNotFound
	}
	r.byID[p.ID] = clonePet(p)
	return clonePet(p), nil
}

func (r *PetRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *PetRepo) GetWithShelter(ctx context.Context, id int64) (pets.WithShelter, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return pets.WithShelter{}, err
	}
	s, err := r.shelters.GetByID(ctx, p.ShelterID)
	if err != nil {
		// inner join: sin shelter no hay fila
		return pets.WithShelter{}, pets.ErrNotFound
	}
	return pets.WithShelter{Pet: p, Shelter: s}, nil
}

func (r *PetRepo) AppendImage(ctx context.Context, id int64, url string, updatedAt time.Time) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	p = clonePet(p)
	p.Images = append(p.Images, url)
	p.UpdatedAt = updatedAt
	r.byID[id] = p
	return clonePet(p), nil
}

func (r *PetRepo) FindByName(ctx context.Context, shelterID int64, name string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found pets.Pet
		ok    bool
	)
	for _, p := range r.byID {
		if p.ShelterID != shelterID || p.Name != name {
			continue
		}
		if !ok || p.ID < found.ID {
			found, ok = p, true
		}
	}
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(found), nil
}

func (r *PetRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	r.mu.RLock()
	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if r.matches(ctx, p, f) {
			out = append(out, clonePet(p))
		}
	}
	r.mu.RUnlock()

	// created_at desc, id desc: mismo orden que postgres
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if f.Offset >= len(out) {
		return []pets.Pet{}, nil
	}
	out = out[f.Offset:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *PetRepo) matches(ctx context.Context, p pets.Pet, f pets.ListFilter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Species != "" && !strings.EqualFold(p.Species, f.Species) {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !containsFold(p.Name, q) && !containsFold(p.Breed, q) && !containsFold(p.Description, q) {
			return false
		}
	}
	if f.Location != "" {
		s, err := r.shelters.GetByID(ctx, p.ShelterID)
		if err != nil || !containsFold(s.Location, strings.ToLower(f.Location)) {
			return false
		}
	}
	return true
}

func containsFold(s, lowerSub string) bool {
	return strings.Contains(strings.ToLower(s), lowerSub)
}

func clonePet(p pets.Pet) pets.Pet {
	p.Images = append([]string(nil), p.Images...)
	p.Characteristics = append([]string(nil), p.Characteristics...)
	return p
}
