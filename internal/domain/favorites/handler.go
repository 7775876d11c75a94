package favorites

import (
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/favorites", func(fr chi.Router) {
		fr.Use(middleware.RequireAuth)

		fr.Get("/", listFavoritesHandler(svc, log))
		fr.Post("/", addFavoriteHandler(svc, log))
		fr.Delete("/{petId}", removeFavoriteHandler(svc, log))
		fr.Get("/{petId}/check", checkFavoriteHandler(svc, log))
	})
}

type addFavoriteRequest struct {
	PetID int64 `json:"petId" validate:"required,gt=0"`
}

type favoriteResponse struct {
	UserID    string    `json:"userId"`
	PetID     int64     `json:"petId"`
	CreatedAt time.Time `json:"createdAt"`
}

type favoriteWithPetResponse struct {
	favoriteResponse
	Pet pets.PetResponse `json:"pet"`
}

type checkResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

// listFavoritesHandler godoc
// @Summary Favoritos del usuario actual
// @Tags favorites
// @Produce json
// @Success 200 {array} favoriteWithPetResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/favorites [get]
func listFavoritesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			log.Error("list favorites failed", map[string]any{"error": err, "user_id": claims.UserID})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch favorites")
			return
		}

		out := make([]favoriteWithPetResponse, 0, len(items))
		for _, it := range items {
			out = append(out, favoriteWithPetResponse{
				favoriteResponse: toResponse(it.Favorite),
				Pet:              pets.ToResponse(it.Pet),
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// addFavoriteHandler godoc
// @Summary Agregar favorito
// @Description Idempotente: 201 si se creó, 200 con la fila existente si ya estaba.
// @Tags favorites
// @Accept json
// @Produce json
// @Param payload body addFavoriteRequest true "Mascota"
// @Success 201 {object} favoriteResponse
// @Success 200 {object} favoriteResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/favorites [post]
func addFavoriteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req addFavoriteRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		f, created, err := svc.Add(r.Context(), claims.UserID, req.PetID)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrNotFound):
				httpx.WriteError(w, http.StatusNotFound, "Pet not found")
			case errors.Is(err, ErrUserNotFound):
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			default:
				log.Error("add favorite failed", map[string]any{"error": err, "user_id": claims.UserID, "pet_id": req.PetID})
				httpx.WriteError(w, http.StatusInternalServerError, "Failed to add favorite")
			}
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		httpx.WriteJSON(w, status, toResponse(f))
	}
}

// removeFavoriteHandler godoc
// @Summary Quitar favorito
// @Description No falla si el favorito no existe.
// @Tags favorites
// @Param petId path int true "ID de la mascota"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/favorites/{petId} [delete]
func removeFavoriteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		petID, err := httpx.PathInt64(chi.URLParam(r, "petId"))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.Remove(r.Context(), claims.UserID, petID); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("remove favorite failed", map[string]any{"error": err, "user_id": claims.UserID, "pet_id": petID})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to remove favorite")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// checkFavoriteHandler godoc
// @Summary ¿Está en favoritos?
// @Tags favorites
// @Produce json
// @Param petId path int true "ID de la mascota"
// @Success 200 {object} checkResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/favorites/{petId}/check [get]
func checkFavoriteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		petID, err := httpx.PathInt64(chi.URLParam(r, "petId"))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		ok, err := svc.IsFavorite(r.Context(), claims.UserID, petID)
		if err != nil {
			log.Error("check favorite failed", map[string]any{"error": err, "user_id": claims.UserID, "pet_id": petID})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to check favorite status")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, checkResponse{IsFavorite: ok})
	}
}

func toResponse(f Favorite) favoriteResponse {
	return favoriteResponse{
		UserID:    f.UserID,
		PetID:     f.PetID,
		CreatedAt: f.CreatedAt,
	}
}
