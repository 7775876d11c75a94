package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption/internal/domain/favorites"
)

type favoriteKey struct {
	userID string
	petID  int64
}

type FavoriteRepo struct {
	mu   sync.RWMutex
	rows map[favoriteKey]favorites.Favorite
	pets *PetRepo
}

func NewFavoriteRepo(pets *PetRepo) *FavoriteRepo {
	return &FavoriteRepo{
		rows: make(map[favoriteKey]favorites.Favorite),
		pets: pets,
	}
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]favorites.WithPet, error) {
	r.mu.RLock()
	rows := make([]favorites.Favorite, 0)
	for k, f := range r.rows {
		if k.userID == userID {
			rows = append(rows, f)
		}
	}
	r.mu.RUnlock()

	out := make([]favorites.WithPet, 0, len(rows))
	for _, f := range rows {
		p, err := r.pets.GetByID(ctx, f.PetID)
		if err != nil {
			continue
		}
		out = append(out, favorites.WithPet{Favorite: f, Pet: p})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].PetID > out[j].PetID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *FavoriteRepo) Add(ctx context.Context, f favorites.Favorite) (favorites.Favorite, bool, error) {
	if _, err := r.pets.GetByID(ctx, f.PetID); err != nil {
		return favorites.Favorite{}, false, favorites.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := favoriteKey{userID: f.UserID, petID: f.PetID}
	if existing, ok := r.rows[k]; ok {
		return existing, false, nil
	}
	r.rows[k] = f
	return f, true, nil
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID string, petID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, favoriteKey{userID: userID, petID: petID})
	return nil
}

func (r *FavoriteRepo) Exists(ctx context.Context, userID string, petID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rows[favoriteKey{userID: userID, petID: petID}]
	return ok, nil
}
