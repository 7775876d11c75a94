package users

import "context"

type Repository interface {
	// Upsert inserta o sobreescribe los campos de perfil por ID.
	// Email duplicado en otro usuario => ErrConflict.
	Upsert(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
