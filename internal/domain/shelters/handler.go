package shelters

import (
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/shelters", func(sr chi.Router) {
		sr.Get("/", listSheltersHandler(svc, log))
		sr.Get("/{id}", getShelterHandler(svc, log))
	})
}

// RegisterAdminRoutes se monta dentro del grupo /api/admin (ya protegido).
func RegisterAdminRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/shelters", createShelterHandler(svc, log))
}

type createShelterRequest struct {
	Name        string   `json:"name" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Website     string   `json:"website" validate:"omitempty,url"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount int      `json:"reviewCount" validate:"gte=0"`
}

// ShelterResponse se reutiliza en pets para el join pet+shelter.
type ShelterResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	Rating      *float64  `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// listSheltersHandler godoc
// @Summary Listar refugios
// @Tags shelters
// @Produce json
// @Success 200 {array} ShelterResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/shelters [get]
func listSheltersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list shelters failed", map[string]any{"error": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch shelters")
			return
		}

		out := make([]ShelterResponse, 0, len(items))
		for _, s := range items {
			out = append(out, ToResponse(s))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getShelterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathInt64(chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		s, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Shelter not found")
				return
			}
			log.Error("get shelter failed", map[string]any{"error": err, "shelter_id": id})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch shelter")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, ToResponse(s))
	}
}

// createShelterHandler godoc
// @Summary Crear refugio (admin)
// @Tags shelters
// @Accept json
// @Produce json
// @Param payload body createShelterRequest true "Datos del refugio"
// @Success 201 {object} ShelterResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/admin/shelters [post]
func createShelterHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createShelterRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		s, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Location:    req.Location,
			Address:     req.Address,
			Phone:       req.Phone,
			Email:       req.Email,
			Website:     req.Website,
			Rating:      req.Rating,
			ReviewCount: req.ReviewCount,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteError(w, http.StatusBadRequest, err.Error())
				return
			case errors.Is(err, ErrConflict):
				httpx.WriteError(w, http.StatusConflict, "Shelter already exists")
				return
			}
			log.Error("create shelter failed", map[string]any{"error": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to create shelter")
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, ToResponse(s))
	}
}

func ToResponse(s Shelter) ShelterResponse {
	return ShelterResponse{
		ID:          s.ID,
		Name:        s.Name,
		Location:    s.Location,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		Website:     s.Website,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		CreatedAt:   s.CreatedAt,
	}
}
