package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption/internal/domain/applications"

	"github.com/jmoiron/sqlx"
)

type applicationRow struct {
	ID             int64      `db:"id"`
	UserID         string     `db:"user_id"`
	PetID          int64      `db:"pet_id"`
	Status         string     `db:"status"`
	Message        string     `db:"message"`
	ContactInfo    jsonObject `db:"contact_info"`
	ExperienceInfo jsonObject `db:"experience_info"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (r applicationRow) toDomain() applications.Application {
	return applications.Application{
		ID:             r.ID,
		UserID:         r.UserID,
		PetID:          r.PetID,
		Status:         applications.Status(r.Status),
		Message:        r.Message,
		ContactInfo:    map[string]any(r.ContactInfo),
		ExperienceInfo: map[string]any(r.ExperienceInfo),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Las columnas de applications van con alias app_* para no chocar con pets.
type applicationWithPetRow struct {
	AppID          int64      `db:"app_id"`
	UserID         string     `db:"user_id"`
	AppStatus      string     `db:"app_status"`
	Message        string     `db:"message"`
	ContactInfo    jsonObject `db:"contact_info"`
	ExperienceInfo jsonObject `db:"experience_info"`
	AppCreatedAt   time.Time  `db:"app_created_at"`
	AppUpdatedAt   time.Time  `db:"app_updated_at"`
	petRow
}

type ApplicationsRepo struct {
	db *sqlx.DB
}

func NewApplicationsRepo(db *sqlx.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) (applications.Application, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO applications (
			user_id, pet_id, status, message, contact_info, experience_info, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		a.UserID, a.PetID, string(a.Status), a.Message,
		jsonObject(a.ContactInfo), jsonObject(a.ExperienceInfo),
		a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			if pgConstraint(err) == fkApplicationsUser {
				return applications.Application{}, applications.ErrUserNotFound
			}
			return applications.Application{}, applications.ErrPetNotFound
		}
		return applications.Application{}, err
	}
	return a, nil
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id int64) (applications.Application, error) {
	var row applicationRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, user_id, pet_id, status, message, contact_info, experience_info, created_at, updated_at
		FROM applications
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return applications.Application{}, applications.ErrNotFound
		}
		return applications.Application{}, err
	}
	return row.toDomain(), nil
}

func (r *ApplicationsRepo) ListByUser(ctx context.Context, userID string) ([]applications.WithPet, error) {
	var rows []applicationWithPetRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			a.id AS app_id, a.user_id, a.status AS app_status, a.message,
			a.contact_info, a.experience_info,
			a.created_at AS app_created_at, a.updated_at AS app_updated_at,
			`+petColumns+`
		FROM applications a
		INNER JOIN pets p ON p.id = a.pet_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}

	out := make([]applications.WithPet, 0, len(rows))
	for _, row := range rows {
		out = append(out, applications.WithPet{
			Application: applications.Application{
				ID:             row.AppID,
				UserID:         row.UserID,
				PetID:          row.petRow.ID,
				Status:         applications.Status(row.AppStatus),
				Message:        row.Message,
				ContactInfo:    map[string]any(row.ContactInfo),
				ExperienceInfo: map[string]any(row.ExperienceInfo),
				CreatedAt:      row.AppCreatedAt,
				UpdatedAt:      row.AppUpdatedAt,
			},
			Pet: row.toDomain(),
		})
	}
	return out, nil
}

// Update solo persiste status y updated_at; el resto es inmutable.
func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application) (applications.Application, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1
	`, a.ID, string(a.Status), a.UpdatedAt)
	if err != nil {
		return applications.Application{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return applications.Application{}, applications.ErrNotFound
	}
	return a, nil
}
