package postgres

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/pets"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var petCols = []string{
	"id", "name", "species", "breed", "age", "weight", "gender", "size", "color",
	"description", "characteristics", "images", "status", "shelter_id", "created_at", "updated_at",
}

func TestPetsRepo_ListBuildsFilteredQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(petCols).AddRow(
		int64(3), "Max", "dog", "Border Collie", "1 year", "18 kg", "male", "medium", "black and white",
		"Energetic", []byte(`["Smart","Active"]`), []byte(`["https://img.test/max.jpg"]`), "available", int64(1), ts, ts,
	)
	mock.ExpectQuery(`WHERE p.status = \$1 AND lower\(p.species\) = lower\(\$2\) AND s.location ILIKE \$3 ORDER BY p.created_at DESC, p.id DESC LIMIT \$4 OFFSET \$5`).
		WithArgs("available", "dog", "%hills%", 20, 0).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), pets.ListFilter{
		Species:  "dog",
		Location: "hills",
		Status:   pets.StatusAvailable,
		Limit:    20,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Max", got[0].Name)
	assert.Equal(t, []string{"Smart", "Active"}, got[0].Characteristics)
	assert.Equal(t, pets.SizeMedium, got[0].Size)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectQuery(`FROM pets p WHERE p.id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(petCols))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_UpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectExec(`UPDATE pets`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), pets.Pet{ID: 9, Images: []string{"x"}})
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_AppendImageConcatenatesInPlace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)
	ts := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE pets p SET images = p.images \|\| jsonb_build_array\(\$2::text\), updated_at = \$3 WHERE p.id = \$1 RETURNING`).
		WithArgs(int64(3), "https://cdn.test/b.png", ts).
		WillReturnRows(sqlmock.NewRows(petCols).AddRow(
			int64(3), "Max", "dog", "Border Collie", "1 year", "18 kg", "male", "medium", "black",
			"", []byte(`[]`), []byte(`["https://cdn.test/a.png","https://cdn.test/b.png"]`), "available", int64(1), ts, ts,
		))

	p, err := repo.AppendImage(context.Background(), 3, "https://cdn.test/b.png", ts)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.test/a.png", "https://cdn.test/b.png"}, p.Images)

	mock.ExpectQuery(`UPDATE pets p SET images`).
		WithArgs(int64(4), "x", ts).
		WillReturnRows(sqlmock.NewRows(petCols))

	_, err = repo.AppendImage(context.Background(), 4, "x", ts)
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_FindByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectQuery(`FROM pets p WHERE p.shelter_id = \$1 AND p.name = \$2 ORDER BY p.id LIMIT 1`).
		WithArgs(int64(1), "Luna").
		WillReturnRows(sqlmock.NewRows(petCols))

	_, err := repo.FindByName(context.Background(), 1, "Luna")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoritesRepo_AddExistingReturnsStoredRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoritesRepo(db)
	first := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO favorites .* ON CONFLICT \(user_id, pet_id\) DO NOTHING`).
		WithArgs("u1", int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "pet_id", "created_at"}))
	mock.ExpectQuery(`SELECT user_id, pet_id, created_at FROM favorites`).
		WithArgs("u1", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "pet_id", "created_at"}).AddRow("u1", int64(1), first))

	f, created, err := repo.Add(context.Background(), favorites.Favorite{UserID: "u1", PetID: 1, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, f.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoritesRepo_AddUnknownPet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoritesRepo(db)

	mock.ExpectQuery(`INSERT INTO favorites`).
		WillReturnError(&pq.Error{Code: "23503"})

	_, _, err := repo.Add(context.Background(), favorites.Favorite{UserID: "u1", PetID: 77})
	assert.ErrorIs(t, err, favorites.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoritesRepo_AddUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoritesRepo(db)

	mock.ExpectQuery(`INSERT INTO favorites`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "favorites_user_id_fkey"})
	mock.ExpectQuery(`INSERT INTO favorites`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "favorites_pet_id_fkey"})

	_, _, err := repo.Add(context.Background(), favorites.Favorite{UserID: "ghost", PetID: 1})
	assert.ErrorIs(t, err, favorites.ErrUserNotFound)

	_, _, err = repo.Add(context.Background(), favorites.Favorite{UserID: "u1", PetID: 77})
	assert.ErrorIs(t, err, favorites.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsRepo_CreateForeignKeys(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationsRepo(db)

	mock.ExpectQuery(`INSERT INTO applications`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "applications_user_id_fkey"})
	mock.ExpectQuery(`INSERT INTO applications`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "applications_pet_id_fkey"})

	_, err := repo.Create(context.Background(), applications.Application{UserID: "ghost", PetID: 1, Status: applications.StatusPending})
	assert.ErrorIs(t, err, applications.ErrUserNotFound)

	_, err = repo.Create(context.Background(), applications.Application{UserID: "u1", PetID: 99, Status: applications.StatusPending})
	assert.ErrorIs(t, err, applications.ErrPetNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsRepo_CreateAndUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationsRepo(db)
	now := time.Date(2026, 3, 3, 3, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs("u1", int64(2), "pending", "hi", `{"phone":"123"}`, `{}`, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	a, err := repo.Create(context.Background(), applications.Application{
		UserID:      "u1",
		PetID:       2,
		Status:      applications.StatusPending,
		Message:     "hi",
		ContactInfo: map[string]any{"phone": "123"},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), a.ID)

	mock.ExpectExec(`UPDATE applications SET status = \$2, updated_at = \$3 WHERE id = \$1`).
		WithArgs(int64(12), "approved", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Update(context.Background(), applications.Application{ID: 12, Status: applications.StatusApproved, UpdatedAt: now})
	assert.ErrorIs(t, err, applications.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSessionStore(db)
	now := time.Date(2026, 4, 4, 4, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM sessions WHERE expire <= \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_GetDecodesClaims(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSessionStore(db)
	exp := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT sess, expire FROM sessions WHERE sid = \$1 AND expire > \$2`).
		WithArgs("sid-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sess", "expire"}).
			AddRow([]byte(`{"claims":{"sub":"user-1","email":"a@b.c"}}`), exp))

	s, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", s.Claims.UserID)
	assert.Equal(t, "a@b.c", s.Claims.Email)
	assert.Equal(t, exp, s.ExpiresAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePatternEscapes(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
