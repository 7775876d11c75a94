package pets

import (
	"time"

	"pet-adoption/internal/domain/shelters"
)

// Status es la etapa de adopción de la mascota.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	}
	return false
}

// Size categoría de tamaño.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Gender de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Pet representa una mascota publicada por un refugio.
type Pet struct {
	ID int64

	Name    string
	Species string // dog, cat, rabbit... texto libre en minúsculas
	Breed   string
	Age     string // "2 years", "6 months": texto libre, no es una duración
	Weight  string // "25 kg"
	Gender  Gender
	Size    Size
	Color   string

	Description     string
	Characteristics []string
	Images          []string // ordenadas; la primera es la portada

	Status    Status
	ShelterID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithShelter es el resultado del inner join pet + shelter.
type WithShelter struct {
	Pet
	Shelter shelters.Shelter
}
