package favorites

import (
	"time"

	"pet-adoption/internal/domain/pets"
)

// Favorite: identidad compuesta (UserID, PetID), a lo sumo una fila por par.
type Favorite struct {
	UserID    string
	PetID     int64
	CreatedAt time.Time
}

// WithPet es el resultado del join favorite + pet usado en el listado.
type WithPet struct {
	Favorite
	Pet pets.Pet
}
