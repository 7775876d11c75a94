package favorites

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// orphanUserRepo responde como postgres cuando falla la FK de user_id.
type orphanUserRepo struct {
	*testRepo
}

func (orphanUserRepo) Add(ctx context.Context, f Favorite) (Favorite, bool, error) {
	return Favorite{}, false, ErrUserNotFound
}

func TestAddFavoriteHandler_UnknownUserIsUnauthorized(t *testing.T) {
	svc := NewService(orphanUserRepo{newTestRepo()}, testPets{1: true})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: "ghost"})))
		})
	})
	RegisterRoutes(r, svc, logger.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"petId":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}
