package favorites

import (
	"context"
	"sort"
	"testing"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairKey struct {
	user string
	pet  int64
}

type testRepo struct {
	rows map[pairKey]Favorite
}

func newTestRepo() *testRepo {
	return &testRepo{rows: map[pairKey]Favorite{}}
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]WithPet, error) {
	out := make([]WithPet, 0)
	for k, f := range r.rows {
		if k.user == userID {
			out = append(out, WithPet{Favorite: f, Pet: pets.Pet{ID: f.PetID}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) Add(ctx context.Context, f Favorite) (Favorite, bool, error) {
	k := pairKey{f.UserID, f.PetID}
	if existing, ok := r.rows[k]; ok {
		return existing, false, nil
	}
	r.rows[k] = f
	return f, true, nil
}

func (r *testRepo) Remove(ctx context.Context, userID string, petID int64) error {
	delete(r.rows, pairKey{userID, petID})
	return nil
}

func (r *testRepo) Exists(ctx context.Context, userID string, petID int64) (bool, error) {
	_, ok := r.rows[pairKey{userID, petID}]
	return ok, nil
}

type testPets map[int64]bool

func (p testPets) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	if !p[id] {
		return pets.Pet{}, pets.ErrNotFound
	}
	return pets.Pet{ID: id}, nil
}

func newTestService() (*Service, *testRepo, *time.Time) {
	repo := newTestRepo()
	svc := NewService(repo, testPets{1: true, 2: true})
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, repo, &clock
}

func TestAdd_ThenIsFavorite_ThenRemove(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, created, err := svc.Add(ctx, "u1", 1)
	require.NoError(t, err)
	assert.True(t, created)

	ok, err := svc.IsFavorite(ctx, "u1", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Remove(ctx, "u1", 1))

	ok, err = svc.IsFavorite(ctx, "u1", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdd_Idempotent(t *testing.T) {
	svc, repo, clock := newTestService()
	ctx := context.Background()

	first, created, err := svc.Add(ctx, "u1", 2)
	require.NoError(t, err)
	require.True(t, created)

	*clock = clock.Add(time.Minute)
	second, created, err := svc.Add(ctx, "u1", 2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Len(t, repo.rows, 1)
}

func TestAdd_Errors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Add(ctx, "u1", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Add(ctx, "u1", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove_MissingIsNoop(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Remove(context.Background(), "u1", 2))
}

func TestList_MostRecentFirst(t *testing.T) {
	svc, _, clock := newTestService()
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "u1", 1)
	require.NoError(t, err)
	*clock = clock.Add(time.Hour)
	_, _, err = svc.Add(ctx, "u1", 2)
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, "u2", 1)
	require.NoError(t, err)

	out, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].PetID)
	assert.Equal(t, int64(1), out[1].PetID)
}
