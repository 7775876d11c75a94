package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedApplication(t *testing.T, svc router.Services) applications.Application {
	t.Helper()
	ctx := context.Background()

	s, err := svc.Shelters.Create(ctx, shelters.CreateInput{Name: "Inner West Rescue", Location: "Newtown, NSW"})
	require.NoError(t, err)
	p, err := svc.Pets.Create(ctx, pets.CreateInput{
		Name:      "Pepper",
		Species:   "dog",
		Breed:     "Kelpie",
		Age:       "4 years",
		Gender:    "female",
		Size:      "medium",
		Images:    []string{"https://example.com/pepper.jpg"},
		ShelterID: s.ID,
	})
	require.NoError(t, err)
	a, err := svc.Applications.Create(ctx, applications.CreateInput{UserID: "user-1", PetID: p.ID})
	require.NoError(t, err)
	return a
}

func TestReviewHandler_AppliesDecision(t *testing.T) {
	svc := router.NewServices(router.NewMemoryBackend())
	a := seedApplication(t, svc)
	h := reviewHandler(svc.Applications, logger.NewNop())

	err := h(context.Background(), applications.ReviewDecision{ApplicationID: a.ID, Status: "approved"})
	require.NoError(t, err)

	list, err := svc.Applications.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, applications.StatusApproved, list[0].Status)
}

func TestReviewHandler_DomainErrorsAreAcked(t *testing.T) {
	svc := router.NewServices(router.NewMemoryBackend())
	a := seedApplication(t, svc)
	h := reviewHandler(svc.Applications, logger.NewNop())
	ctx := context.Background()

	// id inexistente
	assert.NoError(t, h(ctx, applications.ReviewDecision{ApplicationID: 999, Status: "approved"}))
	// estado inválido
	assert.NoError(t, h(ctx, applications.ReviewDecision{ApplicationID: a.ID, Status: "maybe"}))

	require.NoError(t, h(ctx, applications.ReviewDecision{ApplicationID: a.ID, Status: "rejected"}))
	// terminal
	assert.NoError(t, h(ctx, applications.ReviewDecision{ApplicationID: a.ID, Status: "approved"}))

	list, err := svc.Applications.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, applications.StatusRejected, list[0].Status)
}

type failingSessions struct {
	auth.SessionStore
}

func (failingSessions) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestPurgeSessions(t *testing.T) {
	ctx := context.Background()
	store := router.NewMemoryBackend().Sessions

	require.NoError(t, store.Create(ctx, auth.Session{
		ID:        "old",
		Claims:    auth.Claims{UserID: "u1"},
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, store.Create(ctx, auth.Session{
		ID:        "fresh",
		Claims:    auth.Claims{UserID: "u2"},
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	assert.Equal(t, int64(1), purgeSessions(ctx, store, logger.NewNop()))

	_, err := store.Get(ctx, "fresh")
	assert.NoError(t, err)

	assert.Equal(t, int64(0), purgeSessions(ctx, failingSessions{}, logger.NewNop()))
	assert.Equal(t, int64(0), purgeSessions(ctx, nil, logger.NewNop()))
}

func TestRun_UnknownMode(t *testing.T) {
	a := &App{log: logger.NewNop()}
	err := a.Run(context.Background(), "batch")
	require.Error(t, err)
}
