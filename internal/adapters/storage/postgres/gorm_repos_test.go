package postgres

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	gdb, err := NewGorm(db)
	require.NoError(t, err)
	return gdb, mock
}

var shelterCols = []string{
	"id", "name", "location", "address", "phone", "email", "website", "rating", "review_count", "created_at",
}

func TestUsersRepo_UpsertOnConflictUpdatesProfile(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewUsersRepo(gdb)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" .* ON CONFLICT \("id"\) DO UPDATE SET "email"="excluded"."email".*"updated_at"="excluded"."updated_at"`).
		WithArgs("sub-1", "ana@example.com", "Ana", "", "", "Sydney", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := repo.Upsert(context.Background(), users.User{
		ID:        "sub-1",
		Email:     "ana@example.com",
		FirstName: "Ana",
		Location:  "Sydney",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_UpsertEmptyEmailIsNull(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewUsersRepo(gdb)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WithArgs("sub-2", nil, "", "", "", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := repo.Upsert(context.Background(), users.User{ID: "sub-2", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Empty(t, u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_UpsertDuplicateEmail(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewUsersRepo(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), users.User{ID: "sub-3", Email: "taken@example.com"})
	assert.ErrorIs(t, err, users.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_GetByID(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewUsersRepo(gdb)
	ts := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "email", "first_name", "last_name", "profile_image_url", "location", "created_at", "updated_at"}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("sub-4", nil, "Sam", "", "", "Sydney", ts, ts))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(cols))

	u, err := repo.GetByID(context.Background(), "sub-4")
	require.NoError(t, err)
	assert.Equal(t, "Sam", u.FirstName)
	assert.Empty(t, u.Email)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, users.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSheltersRepo_CreateReturnsID(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewSheltersRepo(gdb)
	now := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)
	rating := 4.5

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "shelters" .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	s, err := repo.Create(context.Background(), shelters.Shelter{
		Name:      "City Paws",
		Location:  "Sydney CBD",
		Rating:    &rating,
		CreatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.ID)
	require.NotNil(t, s.Rating)
	assert.InDelta(t, 4.5, *s.Rating, 0.0001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSheltersRepo_CreateDuplicateName(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewSheltersRepo(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "shelters"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "shelters_name_lower_key"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), shelters.Shelter{Name: "City Paws", Location: "Sydney CBD"})
	assert.ErrorIs(t, err, shelters.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSheltersRepo_Lookups(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewSheltersRepo(gdb)
	ts := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "shelters" WHERE lower\(name\) = lower\(\$1\)`).
		WillReturnRows(sqlmock.NewRows(shelterCols).
			AddRow(int64(1), "Hills Animal Rescue", "Hills District, NSW", "", "", "", "", 4.8, 156, ts))
	mock.ExpectQuery(`SELECT \* FROM "shelters" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(shelterCols))
	mock.ExpectQuery(`SELECT \* FROM "shelters" ORDER BY name ASC, id ASC`).
		WillReturnRows(sqlmock.NewRows(shelterCols).
			AddRow(int64(2), "City Paws", "Sydney CBD", "", "", "", "", nil, 0, ts).
			AddRow(int64(1), "Hills Animal Rescue", "Hills District, NSW", "", "", "", "", 4.8, 156, ts))

	s, err := repo.GetByName(context.Background(), "HILLS ANIMAL RESCUE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, 156, s.ReviewCount)

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, shelters.ErrNotFound)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "City Paws", list[0].Name)
	assert.Nil(t, list[0].Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}
