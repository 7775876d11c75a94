package memory

import (
	"context"
	"strings"
	"sync"

	"pet-adoption/internal/domain/users"
)

type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[string]users.User)}
}

func (r *UserRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.Email != "" {
		for id, other := range r.byID {
			if id != u.ID && strings.EqualFold(other.Email, u.Email) {
				return users.User{}, users.ErrConflict
			}
		}
	}

	if existing, ok := r.byID[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	r.byID[u.ID] = u
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}
