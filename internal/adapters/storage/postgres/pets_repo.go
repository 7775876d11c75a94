package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"

	"github.com/jmoiron/sqlx"
)

const petColumns = `p.id, p.name, p.species, p.breed, p.age, p.weight, p.gender, p.size, p.color,
	p.description, p.characteristics, p.images, p.status, p.shelter_id, p.created_at, p.updated_at`

type petRow struct {
	ID              int64      `db:"id"`
	Name            string     `db:"name"`
	Species         string     `db:"species"`
	Breed           string     `db:"breed"`
	Age             string     `db:"age"`
	Weight          string     `db:"weight"`
	Gender          string     `db:"gender"`
	Size            string     `db:"size"`
	Color           string     `db:"color"`
	Description     string     `db:"description"`
	Characteristics stringList `db:"characteristics"`
	Images          stringList `db:"images"`
	Status          string     `db:"status"`
	ShelterID       int64      `db:"shelter_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r petRow) toDomain() pets.Pet {
	return pets.Pet{
		ID:              r.ID,
		Name:            r.Name,
		Species:         r.Species,
		Breed:           r.Breed,
		Age:             r.Age,
		Weight:          r.Weight,
		Gender:          pets.Gender(r.Gender),
		Size:            pets.Size(r.Size),
		Color:           r.Color,
		Description:     r.Description,
		Characteristics: []string(r.Characteristics),
		Images:          []string(r.Images),
		Status:          pets.Status(r.Status),
		ShelterID:       r.ShelterID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type petWithShelterRow struct {
	petRow
	ShelterName        string          `db:"s_name"`
	ShelterLocation    string          `db:"s_location"`
	ShelterAddress     string          `db:"s_address"`
	ShelterPhone       string          `db:"s_phone"`
	ShelterEmail       string          `db:"s_email"`
	ShelterWebsite     string          `db:"s_website"`
	ShelterRating      sql.NullFloat64 `db:"s_rating"`
	ShelterReviewCount int             `db:"s_review_count"`
	ShelterCreatedAt   time.Time       `db:"s_created_at"`
}

type PetsRepo struct {
	db *sqlx.DB
}

func NewPetsRepo(db *sqlx.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO pets (
			name, species, breed, age, weight, gender, size, color,
			description, characteristics, images, status, shelter_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`,
		p.Name, p.Species, p.Breed, p.Age, p.Weight, string(p.Gender), string(p.Size), p.Color,
		p.Description, stringList(p.Characteristics), stringList(p.Images), string(p.Status), p.ShelterID,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pets.Pet{}, fmt.Errorf("%w: shelter %d does not exist", pets.ErrInvalidInput, p.ShelterID)
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			age = $5,
			weight = $6,
			gender = $7,
			size = $8,
			color = $9,
			description = $10,
			characteristics = $11,
			images = $12,
			status = $13,
			shelter_id = $14,
			updated_at = $15
		WHERE id = $1
	`,
		p.ID,
		p.Name, p.Species, p.Breed, p.Age, p.Weight, string(p.Gender), string(p.Size), p.Color,
		p.Description, stringList(p.Characteristics), stringList(p.Images), string(p.Status), p.ShelterID,
		p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pets.Pet{}, fmt.Errorf("%w: shelter %d does not exist", pets.ErrInvalidInput, p.ShelterID)
		}
		return pets.Pet{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var row petRow
	err := r.db.GetContext(ctx, &row, `SELECT `+petColumns+` FROM pets p WHERE p.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return row.toDomain(), nil
}

func (r *PetsRepo) GetWithShelter(ctx context.Context, id int64) (pets.WithShelter, error) {
	var row petWithShelterRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+petColumns+`,
			s.name AS s_name, s.location AS s_location, s.address AS s_address,
			s.phone AS s_phone, s.email AS s_email, s.website AS s_website,
			s.rating AS s_rating, s.review_count AS s_review_count, s.created_at AS s_created_at
		FROM pets p
		INNER JOIN shelters s ON s.id = p.shelter_id
		WHERE p.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.WithShelter{}, pets.ErrNotFound
		}
		return pets.WithShelter{}, err
	}

	out := pets.WithShelter{
		Pet: row.toDomain(),
		Shelter: shelters.Shelter{
			ID:          row.ShelterID,
			Name:        row.ShelterName,
			Location:    row.ShelterLocation,
			Address:     row.ShelterAddress,
			Phone:       row.ShelterPhone,
			Email:       row.ShelterEmail,
			Website:     row.ShelterWebsite,
			ReviewCount: row.ShelterReviewCount,
			CreatedAt:   row.ShelterCreatedAt,
		},
	}
	if row.ShelterRating.Valid {
		v := row.ShelterRating.Float64
		out.Shelter.Rating = &v
	}
	return out, nil
}

// AppendImage concatena sobre el jsonb actual; dos subidas concurrentes no se pisan.
func (r *PetsRepo) AppendImage(ctx context.Context, id int64, url string, updatedAt time.Time) (pets.Pet, error) {
	var row petRow
	err := r.db.GetContext(ctx, &row, `
		UPDATE pets p
		SET images = p.images || jsonb_build_array($2::text), updated_at = $3
		WHERE p.id = $1
		RETURNING `+petColumns, id, url, updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return row.toDomain(), nil
}

func (r *PetsRepo) FindByName(ctx context.Context, shelterID int64, name string) (pets.Pet, error) {
	var row petRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+petColumns+` FROM pets p
		WHERE p.shelter_id = $1 AND p.name = $2
		ORDER BY p.id
		LIMIT 1
	`, shelterID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return row.toDomain(), nil
}

// List arma el WHERE con placeholders "?" y sqlx.Rebind los pasa a $n.
func (r *PetsRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, string(f.Status))
	}
	if f.Species != "" {
		where = append(where, "lower(p.species) = lower(?)")
		args = append(args, f.Species)
	}
	if f.Size != "" {
		where = append(where, "p.size = ?")
		args = append(args, string(f.Size))
	}
	if f.Location != "" {
		where = append(where, "s.location ILIKE ?")
		args = append(args, likePattern(f.Location))
	}
	if f.Search != "" {
		where = append(where, "(p.name ILIKE ? OR p.breed ILIKE ? OR p.description ILIKE ?)")
		pat := likePattern(f.Search)
		args = append(args, pat, pat, pat)
	}

	q := `SELECT ` + petColumns + ` FROM pets p INNER JOIN shelters s ON s.id = p.shelter_id`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	var rows []petRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// likePattern escapa comodines del usuario para ILIKE.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
