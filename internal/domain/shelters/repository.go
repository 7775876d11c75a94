package shelters

import "context"

type Repository interface {
	// Create asigna ID y devuelve el registro persistido. ErrConflict si el nombre ya existe.
	Create(ctx context.Context, s Shelter) (Shelter, error)
	GetByID(ctx context.Context, id int64) (Shelter, error)
	// GetByName compara sin distinguir mayúsculas; ErrNotFound si no existe.
	GetByName(ctx context.Context, name string) (Shelter, error)
	List(ctx context.Context) ([]Shelter, error)
}
