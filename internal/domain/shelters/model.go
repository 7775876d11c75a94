package shelters

import "time"

// Shelter es la organización que publica y es dueña de las mascotas.
type Shelter struct {
	ID       int64
	Name     string
	Location string
	Address  string
	Phone    string
	Email    string
	Website  string

	// Rating 1 decimal (ej 4.8). nil = sin reseñas.
	Rating      *float64
	ReviewCount int

	CreatedAt time.Time
}
