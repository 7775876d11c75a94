package applications

import "context"

type Repository interface {
	// Create asigna ID. Violación de FK (pet o usuario inexistente) => ErrPetNotFound.
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id int64) (Application, error)
	// ListByUser ordena por created_at desc.
	ListByUser(ctx context.Context, userID string) ([]WithPet, error)
	Update(ctx context.Context, a Application) (Application, error)
}
