package postgres

import (
	"context"
	"errors"
	"time"

	"pet-adoption/internal/domain/shelters"

	"gorm.io/gorm"
)

type shelterModel struct {
	ID          int64 `gorm:"primaryKey"`
	Name        string
	Location    string
	Address     string
	Phone       string
	Email       string
	Website     string
	Rating      *float64
	ReviewCount int
	CreatedAt   time.Time
}

func (shelterModel) TableName() string { return "shelters" }

func (m shelterModel) toDomain() shelters.Shelter {
	return shelters.Shelter{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		Address:     m.Address,
		Phone:       m.Phone,
		Email:       m.Email,
		Website:     m.Website,
		Rating:      m.Rating,
		ReviewCount: m.ReviewCount,
		CreatedAt:   m.CreatedAt,
	}
}

// SheltersRepo va con gorm: CRUD plano sin joins.
type SheltersRepo struct {
	db *gorm.DB
}

func NewSheltersRepo(db *gorm.DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) (shelters.Shelter, error) {
	m := shelterModel{
		Name:        s.Name,
		Location:    s.Location,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		Website:     s.Website,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		CreatedAt:   s.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return shelters.Shelter{}, shelters.ErrConflict
		}
		return shelters.Shelter{}, err
	}
	return m.toDomain(), nil
}

func (r *SheltersRepo) GetByID(ctx context.Context, id int64) (shelters.Shelter, error) {
	var m shelterModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shelters.Shelter{}, shelters.ErrNotFound
		}
		return shelters.Shelter{}, err
	}
	return m.toDomain(), nil
}

// GetByName usa el índice único sobre lower(name).
func (r *SheltersRepo) GetByName(ctx context.Context, name string) (shelters.Shelter, error) {
	var m shelterModel
	err := r.db.WithContext(ctx).First(&m, "lower(name) = lower(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shelters.Shelter{}, shelters.ErrNotFound
		}
		return shelters.Shelter{}, err
	}
	return m.toDomain(), nil
}

func (r *SheltersRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	var rows []shelterModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]shelters.Shelter, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}
