package favorites

import "context"

type Repository interface {
	// ListByUser ordena por created_at desc.
	ListByUser(ctx context.Context, userID string) ([]WithPet, error)

	// Add inserta si el par no existe. Si ya existe devuelve la fila guardada y created=false.
	// Una carrera entre dos inserts se resuelve por la PK compuesta, nunca con error.
	Add(ctx context.Context, f Favorite) (Favorite, bool, error)

	// Remove no falla si el par no existe.
	Remove(ctx context.Context, userID string, petID int64) error

	Exists(ctx context.Context, userID string, petID int64) (bool, error)
}
