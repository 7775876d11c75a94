package pets

import (
	"context"
	"time"
)

type Repository interface {
	// Create asigna ID y devuelve el registro persistido.
	Create(ctx context.Context, p Pet) (Pet, error)
	Update(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	GetWithShelter(ctx context.Context, id int64) (WithShelter, error)
	List(ctx context.Context, filter ListFilter) ([]Pet, error)
	// AppendImage agrega url al final de images en una sola escritura.
	AppendImage(ctx context.Context, id int64, url string, updatedAt time.Time) (Pet, error)
	// FindByName busca por nombre exacto dentro de un refugio; ErrNotFound si no hay.
	FindByName(ctx context.Context, shelterID int64, name string) (Pet, error)
}

// ListFilter ya viene normalizado por el service (limit/offset/status resueltos).
type ListFilter struct {
	Species  string
	Size     Size
	Location string
	Search   string
	Status   Status

	Limit  int
	Offset int
}
