package users

import (
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/validation"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionOptions configura login/logout. Sin Store no se montan esas rutas.
type SessionOptions struct {
	Store      auth.SessionStore
	TTL        time.Duration
	CookieName string
	Secure     bool
}

func RegisterRoutes(r chi.Router, svc *Service, sessions SessionOptions, log logger.Logger) {
	r.Route("/api/auth/user", func(ur chi.Router) {
		ur.Use(middleware.RequireAuth)
		ur.Get("/", getCurrentUserHandler(svc, log))
		ur.Patch("/", updateCurrentUserHandler(svc, log))
	})

	if sessions.Store != nil {
		r.Post("/api/login", loginHandler(svc, sessions, log))
		r.Post("/api/logout", logoutHandler(sessions, log))
	}
}

type updateUserRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,max=100"`
	LastName        *string `json:"lastName" validate:"omitempty,max=100"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
}

type userResponse struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Location        string    `json:"location"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// getCurrentUserHandler godoc
// @Summary Perfil del usuario autenticado
// @Tags auth
// @Produce json
// @Success 200 {object} userResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/auth/user [get]
func getCurrentUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "User not found")
				return
			}
			log.Error("get user failed", map[string]any{"error": err, "user_id": claims.UserID})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch user")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toResponse(u))
	}
}

// updateCurrentUserHandler godoc
// @Summary Editar perfil propio
// @Description Los campos ausentes conservan su valor.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body updateUserRequest true "Campos de perfil"
// @Success 200 {object} userResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/auth/user [patch]
func updateCurrentUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateUserRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		u, err := svc.Upsert(r.Context(), UpsertInput{
			ID:              claims.UserID,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			ProfileImageURL: req.ProfileImageURL,
			Location:        req.Location,
		})
		if err != nil {
			writeUpsertError(w, log, claims.UserID, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toResponse(u))
	}
}

// loginHandler godoc
// @Summary Abrir sesión
// @Description Canjea la credencial actual (Bearer) por una cookie de sesión.
// @Tags auth
// @Produce json
// @Success 200 {object} userResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/login [post]
func loginHandler(svc *Service, opts SessionOptions, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		u, err := svc.Upsert(r.Context(), UpsertInput{
			ID:              claims.UserID,
			Email:           optional(claims.Email),
			FirstName:       optional(claims.FirstName),
			LastName:        optional(claims.LastName),
			ProfileImageURL: optional(claims.ProfileImageURL),
		})
		if err != nil {
			writeUpsertError(w, log, claims.UserID, err)
			return
		}

		s := auth.Session{
			ID:        uuid.NewString(),
			Claims:    claims,
			ExpiresAt: time.Now().UTC().Add(opts.TTL),
		}
		if err := opts.Store.Create(r.Context(), s); err != nil {
			log.Error("create session failed", map[string]any{"error": err, "user_id": claims.UserID})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to create session")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     opts.CookieName,
			Value:    s.ID,
			Path:     "/",
			Expires:  s.ExpiresAt,
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		httpx.WriteJSON(w, http.StatusOK, toResponse(u))
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Tags auth
// @Success 204
// @Router /api/logout [post]
func logoutHandler(opts SessionOptions, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(opts.CookieName); err == nil && c.Value != "" {
			if err := opts.Store.Delete(r.Context(), c.Value); err != nil {
				log.Error("delete session failed", map[string]any{"error": err})
				httpx.WriteError(w, http.StatusInternalServerError, "Failed to close session")
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     opts.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeUpsertError(w http.ResponseWriter, log logger.Logger, userID string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	default:
		log.Error("upsert user failed", map[string]any{"error": err, "user_id": userID})
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to save user")
	}
}

func toResponse(u User) userResponse {
	out := userResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Location:        u.Location,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.Email != "" {
		email := u.Email
		out.Email = &email
	}
	return out
}
