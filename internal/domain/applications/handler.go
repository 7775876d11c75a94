package applications

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
	r.Route("/api/applications", func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Get("/", listApplicationsHandler(svc, log))
		ar.Post("/", createApplicationHandler(svc, log))
	})
}

// RegisterAdminRoutes: revisión manual, misma regla que el consumer.
func RegisterAdminRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Patch("/applications/{id}/status", updateStatusHandler(svc, log))
}

type createApplicationRequest struct {
	PetID          int64          `json:"petId" validate:"required,gt=0"`
	Message        string         `json:"message" validate:"max=5000"`
	ContactInfo    map[string]any `json:"contactInfo"`
	ExperienceInfo map[string]any `json:"experienceInfo"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type applicationResponse struct {
	ID             int64          `json:"id"`
	UserID         string         `json:"userId"`
	PetID          int64          `json:"petId"`
	Status         Status         `json:"status"`
	Message        string         `json:"message"`
	ContactInfo    map[string]any `json:"contactInfo"`
	ExperienceInfo map[string]any `json:"experienceInfo"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type applicationWithPetResponse struct {
	applicationResponse
	Pet pets.PetResponse `json:"pet"`
}

// listApplicationsHandler godoc
// @Summary Solicitudes del usuario actual
// @Tags applications
// @Produce json
// @Success 200 {array} applicationWithPetResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/applications [get]
func listApplicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			log.Error("list applications failed", map[string]any{"error": err, "user_id": claims.UserID})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch applications")
			return
		}

		out := make([]applicationWithPetResponse, 0, len(items))
		for _, it := range items {
			out = append(out, applicationWithPetResponse{
				applicationResponse: toResponse(it.Application),
				Pet:                 pets.ToResponse(it.Pet),
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createApplicationHandler godoc
// @Summary Enviar solicitud de adopción
// @Tags applications
// @Accept json
// @Produce json
// @Param payload body createApplicationRequest true "Solicitud"
// @Success 201 {object} applicationResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/applications [post]
func createApplicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createApplicationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			UserID:         claims.UserID,
			PetID:          req.PetID,
			Message:        req.Message,
			ContactInfo:    req.ContactInfo,
			ExperienceInfo: req.ExperienceInfo,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrPetNotFound):
				httpx.WriteError(w, http.StatusNotFound, "Pet not found")
			case errors.Is(err, ErrUserNotFound):
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			default:
				log.Error("create application failed", map[string]any{"error": err, "user_id": claims.UserID, "pet_id": req.PetID})
				httpx.WriteError(w, http.StatusInternalServerError, "Failed to create application")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toResponse(a))
	}
}

// updateStatusHandler godoc
// @Summary Revisar solicitud (admin)
// @Description pending -> approved | rejected. Estados terminales no cambian.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "ID de la solicitud"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} applicationResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/admin/applications/{id}/status [patch]
func updateStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathInt64(chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "Application not found")
			return
		}

		var req updateStatusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := svc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrNotFound):
				httpx.WriteError(w, http.StatusNotFound, "Application not found")
			case errors.Is(err, ErrBadState):
				httpx.WriteError(w, http.StatusConflict, err.Error())
			default:
				log.Error("update application status failed", map[string]any{"error": err, "application_id": id})
				httpx.WriteError(w, http.StatusInternalServerError, "Failed to update application")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toResponse(a))
	}
}

func toResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		PetID:          a.PetID,
		Status:         a.Status,
		Message:        a.Message,
		ContactInfo:    nonNil(a.ContactInfo),
		ExperienceInfo: nonNil(a.ExperienceInfo),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
