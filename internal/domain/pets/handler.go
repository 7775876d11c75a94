package pets

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// maxImageBytes limita el multipart de subida de imágenes.
const maxImageBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/{id}", getPetHandler(svc, log))
	})
}

// RegisterAdminRoutes se monta dentro del grupo /api/admin (ya protegido).
func RegisterAdminRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/pets", createPetHandler(svc, log))
	r.Patch("/pets/{id}", updatePetHandler(svc, log))
	r.Post("/pets/{id}/images", uploadImageHandler(svc, log))
}

type createPetRequest struct {
	Name            string   `json:"name" validate:"required"`
	Species         string   `json:"species" validate:"required"`
	Breed           string   `json:"breed" validate:"required"`
	Age             string   `json:"age" validate:"required"`
	Weight          string   `json:"weight"`
	Gender          string   `json:"gender" validate:"required,oneof=male female"`
	Size            string   `json:"size" validate:"required,oneof=small medium large"`
	Color           string   `json:"color"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	Images          []string `json:"images" validate:"required,min=1,dive,url"`
	Status          string   `json:"status" validate:"omitempty,oneof=available pending adopted"`
	ShelterID       int64    `json:"shelterId" validate:"required,gt=0"`
}

type updatePetRequest struct {
	Name            *string   `json:"name"`
	Species         *string   `json:"species"`
	Breed           *string   `json:"breed"`
	Age             *string   `json:"age"`
	Weight          *string   `json:"weight"`
	Gender          *string   `json:"gender" validate:"omitempty,oneof=male female"`
	Size            *string   `json:"size" validate:"omitempty,oneof=small medium large"`
	Color           *string   `json:"color"`
	Description     *string   `json:"description"`
	Characteristics *[]string `json:"characteristics"`
	Images          *[]string `json:"images" validate:"omitempty,min=1,dive,url"`
	Status          *string   `json:"status" validate:"omitempty,oneof=available pending adopted"`
	ShelterID       *int64    `json:"shelterId" validate:"omitempty,gt=0"`
}

type PetResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Species         string    `json:"species"`
	Breed           string    `json:"breed"`
	Age             string    `json:"age"`
	Weight          string    `json:"weight"`
	Gender          Gender    `json:"gender"`
	Size            Size      `json:"size"`
	Color           string    `json:"color"`
	Description     string    `json:"description"`
	Characteristics []string  `json:"characteristics"`
	Images          []string  `json:"images"`
	Status          Status    `json:"status"`
	ShelterID       int64     `json:"shelterId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type petWithShelterResponse struct {
	PetResponse
	Shelter shelters.ShelterResponse `json:"shelter"`
}

// listPetsHandler godoc
// @Summary Listar mascotas disponibles
// @Description Por defecto solo status=available, ordenadas de la más reciente a la más antigua.
// @Tags pets
// @Produce json
// @Param species query string false "Especie (dog, cat, ...)"
// @Param size query string false "small, medium o large"
// @Param location query string false "Texto contenido en la ubicación del refugio"
// @Param search query string false "Texto libre sobre nombre, raza y descripción"
// @Param status query string false "available (default), pending o adopted"
// @Param limit query int false "Máximo de resultados (default 20, máx 100)"
// @Param offset query int false "Desplazamiento (default 0)"
// @Success 200 {array} PetResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := httpx.OptionalQueryInt(r, "limit")
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		offset, err := httpx.QueryInt(r, "offset", 0)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListInput{
			Species:  q.Get("species"),
			Size:     q.Get("size"),
			Location: q.Get("location"),
			Search:   q.Get("search"),
			Status:   q.Get("status"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("list pets failed", map[string]any{"error": err})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch pets")
			return
		}

		out := make([]PetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Detalle de mascota con su refugio
// @Tags pets
// @Produce json
// @Param id path int true "ID de la mascota"
// @Success 200 {object} petWithShelterResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/pets/{id} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathInt64(chi.URLParam(r, "id"))
		if err != nil {
			// id no numérico: no puede existir
			httpx.WriteError(w, http.StatusNotFound, "Pet not found")
			return
		}

		p, err := svc.GetWithShelter(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Pet not found")
				return
			}
			log.Error("get pet failed", map[string]any{"error": err, "pet_id": id})
			httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch pet")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, petWithShelterResponse{
			PetResponse: ToResponse(p.Pet),
			Shelter:     shelters.ToResponse(p.Shelter),
		})
	}
}

// createPetHandler godoc
// @Summary Publicar mascota (admin)
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} PetResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /api/admin/pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Age:             req.Age,
			Weight:          req.Weight,
			Gender:          req.Gender,
			Size:            req.Size,
			Color:           req.Color,
			Description:     req.Description,
			Characteristics: req.Characteristics,
			Images:          req.Images,
			Status:          req.Status,
			ShelterID:       req.ShelterID,
		})
		if err != nil {
			writeMutationError(w, log, "create pet", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, ToResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar mascota (admin)
// @Description PATCH parcial; refresca updatedAt.
// @Tags pets
// @Accept json
// @Produce json
// @Param id path int true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} PetResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/admin/pets/{id} [patch]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathInt64(chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "Pet not found")
			return
		}

		var req updatePetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		p, err := svc.Update(r.Context(), id, UpdateInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Age:             req.Age,
			Weight:          req.Weight,
			Gender:          req.Gender,
			Size:            req.Size,
			Color:           req.Color,
			Description:     req.Description,
			Characteristics: req.Characteristics,
			Images:          req.Images,
			Status:          req.Status,
			ShelterID:       req.ShelterID,
		})
		if err != nil {
			writeMutationError(w, log, "update pet", err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// uploadImageHandler recibe multipart con campo "image".
func uploadImageHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathInt64(chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "Pet not found")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
		file, header, err := r.FormFile("image")
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "multipart field \"image\" is required")
			return
		}
		defer file.Close()

		contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
		p, err := svc.AddImage(r.Context(), id, header.Filename, contentType, file)
		if err != nil {
			writeMutationError(w, log, "upload pet image", err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

func writeMutationError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Pet not found")
	case errors.Is(err, ErrImagesDisabled):
		httpx.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Error(op+" failed", map[string]any{"error": err})
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to "+op)
	}
}

func ToResponse(p Pet) PetResponse {
	chars := p.Characteristics
	if chars == nil {
		chars = []string{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return PetResponse{
		ID:              p.ID,
		Name:            p.Name,
		Species:         p.Species,
		Breed:           p.Breed,
		Age:             p.Age,
		Weight:          p.Weight,
		Gender:          p.Gender,
		Size:            p.Size,
		Color:           p.Color,
		Description:     p.Description,
		Characteristics: chars,
		Images:          images,
		Status:          p.Status,
		ShelterID:       p.ShelterID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
