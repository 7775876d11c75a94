package applications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	nextID int64
	byID   map[int64]Application
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Application{}}
}

func (r *testRepo) Create(ctx context.Context, a Application) (Application, error) {
	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]WithPet, error) {
	out := make([]WithPet, 0)
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, WithPet{Application: a, Pet: pets.Pet{ID: a.PetID}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, a Application) (Application, error) {
	if _, ok := r.byID[a.ID]; !ok {
		return Application{}, ErrNotFound
	}
	r.byID[a.ID] = a
	return a, nil
}

type testPets map[int64]bool

func (p testPets) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	if !p[id] {
		return pets.Pet{}, pets.ErrNotFound
	}
	return pets.Pet{ID: id}, nil
}

type testPublisher struct {
	events []SubmittedEvent
	err    error
}

func (p *testPublisher) PublishSubmitted(ctx context.Context, ev SubmittedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, testPets{1: true})
	fixed := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo
}

func TestCreate_StartsPendingAndIsListed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{
		UserID:      "u1",
		PetID:       1,
		Message:     "  We have a big garden ",
		ContactInfo: map[string]any{"phone": "0400 000 000"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, "We have a big garden", a.Message)
	assert.NotNil(t, a.ExperienceInfo)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, StatusPending, list[0].Status)
}

func TestCreate_Errors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{PetID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{UserID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{UserID: "u1", PetID: 404})
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestCreate_PublishIsBestEffort(t *testing.T) {
	svc, _ := newTestService()
	pub := &testPublisher{err: errors.New("broker down")}
	svc.WithPublisher(pub, nil)

	a, err := svc.Create(context.Background(), CreateInput{UserID: "u1", PetID: 1})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, a.ID, pub.events[0].ApplicationID)
	assert.Equal(t, "u1", pub.events[0].UserID)
}

func TestUpdateStatus_StateMachine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{UserID: "u1", PetID: 1})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, a.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, 999, "approved")
	assert.ErrorIs(t, err, ErrNotFound)

	up, err := svc.UpdateStatus(ctx, a.ID, "Approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, up.Status)

	// mismo estado: idempotente
	again, err := svc.UpdateStatus(ctx, a.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, again.Status)

	_, err = svc.UpdateStatus(ctx, a.ID, "rejected")
	assert.ErrorIs(t, err, ErrBadState)

	_, err = svc.UpdateStatus(ctx, a.ID, "pending")
	assert.ErrorIs(t, err, ErrBadState)
}

func TestHandleReviewDecision(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{UserID: "u1", PetID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.HandleReviewDecision(ctx, ReviewDecision{ApplicationID: a.ID, Status: "rejected"}))
	assert.Equal(t, StatusRejected, repo.byID[a.ID].Status)
}
