package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption/internal/domain/favorites"

	"github.com/jmoiron/sqlx"
)

type favoriteWithPetRow struct {
	UserID      string    `db:"user_id"`
	FavoritedAt time.Time `db:"favorited_at"`
	petRow
}

type FavoritesRepo struct {
	db *sqlx.DB
}

func NewFavoritesRepo(db *sqlx.DB) *FavoritesRepo {
	return &FavoritesRepo{db: db}
}

func (r *FavoritesRepo) ListByUser(ctx context.Context, userID string) ([]favorites.WithPet, error) {
	var rows []favoriteWithPetRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT f.user_id, f.created_at AS favorited_at, `+petColumns+`
		FROM favorites f
		INNER JOIN pets p ON p.id = f.pet_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.pet_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}

	out := make([]favorites.WithPet, 0, len(rows))
	for _, row := range rows {
		out = append(out, favorites.WithPet{
			Favorite: favorites.Favorite{
				UserID:    row.UserID,
				PetID:     row.ID,
				CreatedAt: row.FavoritedAt,
			},
			Pet: row.toDomain(),
		})
	}
	return out, nil
}

// Add usa ON CONFLICT DO NOTHING: dos inserts concurrentes del mismo par
// terminan en una sola fila y el perdedor lee la existente.
func (r *FavoritesRepo) Add(ctx context.Context, f favorites.Favorite) (favorites.Favorite, bool, error) {
	var out favorites.Favorite
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO favorites (user_id, pet_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, pet_id) DO NOTHING
		RETURNING user_id, pet_id, created_at
	`, f.UserID, f.PetID, f.CreatedAt).Scan(&out.UserID, &out.PetID, &out.CreatedAt)

	switch {
	case err == nil:
		return out, true, nil
	case errors.Is(err, sql.ErrNoRows):
		// ya existía
	case isForeignKeyViolation(err):
		if pgConstraint(err) == fkFavoritesUser {
			return favorites.Favorite{}, false, favorites.ErrUserNotFound
		}
		return favorites.Favorite{}, false, favorites.ErrNotFound
	case isUniqueViolation(err):
		// carrera con otro insert; la fila ya está
	default:
		return favorites.Favorite{}, false, err
	}

	err = r.db.QueryRowxContext(ctx, `
		SELECT user_id, pet_id, created_at FROM favorites WHERE user_id = $1 AND pet_id = $2
	`, f.UserID, f.PetID).Scan(&out.UserID, &out.PetID, &out.CreatedAt)
	if err != nil {
		return favorites.Favorite{}, false, err
	}
	return out, false, nil
}

func (r *FavoritesRepo) Remove(ctx context.Context, userID string, petID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND pet_id = $2`, userID, petID)
	return err
}

func (r *FavoritesRepo) Exists(ctx context.Context, userID string, petID int64) (bool, error) {
	var ok bool
	err := r.db.GetContext(ctx, &ok, `
		SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND pet_id = $2)
	`, userID, petID)
	return ok, err
}
