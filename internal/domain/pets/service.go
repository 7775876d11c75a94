package pets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"pet-adoption/internal/domain/shelters"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	// ErrImagesDisabled: no hay ImageStore configurado (sin S3).
	ErrImagesDisabled = errors.New("image uploads are not configured")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ShelterLookup evita que pets dependa del repo de shelters directamente.
type ShelterLookup interface {
	GetByID(ctx context.Context, id int64) (shelters.Shelter, error)
}

// ImageStore sube una imagen y devuelve su URL pública.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo     Repository
	shelters ShelterLookup
	images   ImageStore
	now      func() time.Time
}

func NewService(repo Repository, shelters ShelterLookup) *Service {
	return &Service{
		repo:     repo,
		shelters: shelters,
		now:      time.Now,
	}
}

// WithImageStore habilita AddImage.
func (s *Service) WithImageStore(images ImageStore) *Service {
	s.images = images
	return s
}

type ListInput struct {
	Species  string
	Size     string
	Location string
	Search   string
	Status   string // vacío => available

	Limit  *int // nil => DefaultLimit; 0 => lista vacía
	Offset int
}

func (s *Service) List(ctx context.Context, in ListInput) ([]Pet, error) {
	limit := DefaultLimit
	if in.Limit != nil {
		limit = *in.Limit
	}
	if limit < 0 || in.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be >= 0", ErrInvalidInput)
	}

	f := ListFilter{
		Species:  strings.ToLower(strings.TrimSpace(in.Species)),
		Location: strings.TrimSpace(in.Location),
		Search:   strings.TrimSpace(in.Search),
		Status:   StatusAvailable,
		Limit:    min(limit, MaxLimit),
		Offset:   in.Offset,
	}

	if v := strings.ToLower(strings.TrimSpace(in.Size)); v != "" {
		f.Size = Size(v)
		if !f.Size.Valid() {
			return nil, fmt.Errorf("%w: size must be one of small, medium, large", ErrInvalidInput)
		}
	}
	if v := strings.ToLower(strings.TrimSpace(in.Status)); v != "" {
		f.Status = Status(v)
		if !f.Status.Valid() {
			return nil, fmt.Errorf("%w: status must be one of available, pending, adopted", ErrInvalidInput)
		}
	}

	if f.Limit == 0 {
		return []Pet{}, nil
	}
	return s.repo.List(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetWithShelter: si falta el pet o su shelter => ErrNotFound, nunca un objeto parcial.
func (s *Service) GetWithShelter(ctx context.Context, id int64) (WithShelter, error) {
	if id <= 0 {
		return WithShelter{}, ErrNotFound
	}
	return s.repo.GetWithShelter(ctx, id)
}

type CreateInput struct {
	Name            string
	Species         string
	Breed           string
	Age             string
	Weight          string
	Gender          string
	Size            string
	Color           string
	Description     string
	Characteristics []string
	Images          []string
	Status          string // vacío => available
	ShelterID       int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	now := s.now().UTC()
	p := Pet{
		Name:            strings.TrimSpace(in.Name),
		Species:         strings.ToLower(strings.TrimSpace(in.Species)),
		Breed:           strings.TrimSpace(in.Breed),
		Age:             strings.TrimSpace(in.Age),
		Weight:          strings.TrimSpace(in.Weight),
		Gender:          Gender(strings.ToLower(strings.TrimSpace(in.Gender))),
		Size:            Size(strings.ToLower(strings.TrimSpace(in.Size))),
		Color:           strings.TrimSpace(in.Color),
		Description:     strings.TrimSpace(in.Description),
		Characteristics: cleanList(in.Characteristics),
		Images:          cleanList(in.Images),
		Status:          StatusAvailable,
		ShelterID:       in.ShelterID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if v := strings.TrimSpace(in.Status); v != "" {
		p.Status = Status(strings.ToLower(v))
	}

	if err := validatePet(p); err != nil {
		return Pet{}, err
	}
	if err := s.checkShelter(ctx, p.ShelterID); err != nil {
		return Pet{}, err
	}

	return s.repo.Create(ctx, p)
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name            *string
	Species         *string
	Breed           *string
	Age             *string
	Weight          *string
	Gender          *string
	Size            *string
	Color           *string
	Description     *string
	Characteristics *[]string
	Images          *[]string
	Status          *string
	ShelterID       *int64
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	p := current
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = strings.ToLower(strings.TrimSpace(*in.Species))
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = strings.TrimSpace(*in.Age)
	}
	if in.Weight != nil {
		p.Weight = strings.TrimSpace(*in.Weight)
	}
	if in.Gender != nil {
		p.Gender = Gender(strings.ToLower(strings.TrimSpace(*in.Gender)))
	}
	if in.Size != nil {
		p.Size = Size(strings.ToLower(strings.TrimSpace(*in.Size)))
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Characteristics != nil {
		p.Characteristics = cleanList(*in.Characteristics)
	}
	if in.Images != nil {
		p.Images = cleanList(*in.Images)
	}
	if in.Status != nil {
		p.Status = Status(strings.ToLower(strings.TrimSpace(*in.Status)))
	}
	if in.ShelterID != nil {
		p.ShelterID = *in.ShelterID
	}

	if err := validatePet(p); err != nil {
		return Pet{}, err
	}
	if p.ShelterID != current.ShelterID {
		if err := s.checkShelter(ctx, p.ShelterID); err != nil {
			return Pet{}, err
		}
	}

	p.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, p)
}

// AddImage sube la imagen al ImageStore y la agrega al final de Images.
func (s *Service) AddImage(ctx context.Context, id int64, filename, contentType string, body io.Reader) (Pet, error) {
	if s.images == nil {
		return Pet{}, ErrImagesDisabled
	}
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return Pet{}, fmt.Errorf("%w: content type %q is not an image", ErrInvalidInput, contentType)
	}

	key := fmt.Sprintf("pets/%d/%s%s", p.ID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.images.Upload(ctx, key, body, contentType)
	if err != nil {
		return Pet{}, fmt.Errorf("upload image: %w", err)
	}

	return s.repo.AppendImage(ctx, p.ID, url, s.now().UTC())
}

// FindByName devuelve la mascota del refugio con ese nombre exacto.
func (s *Service) FindByName(ctx context.Context, shelterID int64, name string) (Pet, error) {
	name = strings.TrimSpace(name)
	if shelterID <= 0 || name == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.FindByName(ctx, shelterID, name)
}

func (s *Service) checkShelter(ctx context.Context, shelterID int64) error {
	if s.shelters == nil {
		return nil
	}
	if _, err := s.shelters.GetByID(ctx, shelterID); err != nil {
		if errors.Is(err, shelters.ErrNotFound) {
			return fmt.Errorf("%w: shelter %d does not exist", ErrInvalidInput, shelterID)
		}
		return err
	}
	return nil
}

func validatePet(p Pet) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", p.Name},
		{"species", p.Species},
		{"breed", p.Breed},
		{"age", p.Age},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if !p.Gender.Valid() {
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidInput)
	}
	if !p.Size.Valid() {
		return fmt.Errorf("%w: size must be one of small, medium, large", ErrInvalidInput)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: status must be one of available, pending, adopted", ErrInvalidInput)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	}
	if p.ShelterID <= 0 {
		return fmt.Errorf("%w: shelterId is required", ErrInvalidInput)
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
