package seed

import (
	"net/http"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type seedResponse struct {
	Message   string  `json:"message"`
	ShelterID int64   `json:"shelterId"`
	PetIDs    []int64 `json:"petIds"`
}

func RegisterRoutes(r chi.Router, shelterSvc *shelters.Service, petSvc *pets.Service, log logger.Logger) {
	r.Post("/api/seed", seedHandler(shelterSvc, petSvc, log))
}

// seedHandler godoc
// @Summary Cargar datos de demo
// @Description Solo disponible con ENABLE_SEED=true. No duplica; completa lo que falte.
// @Tags seed
// @Produce json
// @Success 201 {object} seedResponse
// @Success 200 {object} seedResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/seed [post]
func seedHandler(shelterSvc *shelters.Service, petSvc *pets.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := Run(r.Context(), shelterSvc, petSvc)
		if err != nil {
			log.Error("seed failed", map[string]any{"error": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to seed data")
			return
		}

		if !res.Created {
			httpx.WriteJSON(w, http.StatusOK, seedResponse{
				Message:   "Sample data already present",
				ShelterID: res.ShelterID,
				PetIDs:    res.PetIDs,
			})
			return
		}

		log.Info("sample data created", map[string]any{"shelter_id": res.ShelterID, "pets": len(res.PetIDs)})
		httpx.WriteJSON(w, http.StatusCreated, seedResponse{
			Message:   "Sample data created successfully!",
			ShelterID: res.ShelterID,
			PetIDs:    res.PetIDs,
		})
	}
}
