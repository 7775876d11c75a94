package postgres

import (
	"context"
	"errors"
	"time"

	"pet-adoption/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userModel struct {
	ID              string  `gorm:"primaryKey"`
	Email           *string // NULL si no hay; la columna es UNIQUE
	FirstName       string
	LastName        string
	ProfileImageURL string `gorm:"column:profile_image_url"`
	Location        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (userModel) TableName() string { return "users" }

func (m userModel) toDomain() users.User {
	u := users.User{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ProfileImageURL: m.ProfileImageURL,
		Location:        m.Location,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

type UsersRepo struct {
	db *gorm.DB
}

func NewUsersRepo(db *gorm.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Upsert: INSERT ... ON CONFLICT (id) DO UPDATE de los campos de perfil.
// created_at queda intacto en el update.
func (r *UsersRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	m := userModel{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Location:        u.Location,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.Email != "" {
		email := u.Email
		m.Email = &email
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "profile_image_url", "location", "updated_at",
		}),
	}).Create(&m).Error
	if err != nil {
		if isUniqueViolation(err) {
			return users.User{}, users.ErrConflict
		}
		return users.User{}, err
	}
	return m.toDomain(), nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return m.toDomain(), nil
}
