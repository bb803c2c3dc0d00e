package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock-backend/internal/apperrors"
	"stock-backend/internal/models"
)

type LocationRepository struct {
	DB *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{DB: db}
}

func (r *LocationRepository) Create(ctx context.Context, l *models.Location) error {
	l.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO locations(id, name, address)
         VALUES($1, $2, $3)
         RETURNING created_at`,
		l.ID, l.Name, l.Address,
	).Scan(&l.CreatedAt)
}

func (r *LocationRepository) Get(ctx context.Context, id string) (*models.Location, error) {
	var l models.Location
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(address, ''), created_at
         FROM locations WHERE id=$1`, id,
	).Scan(&l.ID, &l.Name, &l.Address, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("location", id)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) GetByName(ctx context.Context, name string) (*models.Location, error) {
	var l models.Location
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(address, ''), created_at
         FROM locations WHERE name=$1`, name,
	).Scan(&l.ID, &l.Name, &l.Address, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("location", name)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]*models.Location, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(address, ''), created_at
         FROM locations ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) Update(ctx context.Context, l *models.Location) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE locations SET name=$2, address=$3 WHERE id=$1`,
		l.ID, l.Name, l.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("location", l.ID)
	}
	return nil
}

// Delete removes the location; historical transfers keep the raw id.
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM locations WHERE id=$1`, id)
	return err
}
