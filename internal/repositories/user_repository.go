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

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(id, email, name, password_hash, role, permissions, active)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Permissions, u.Active,
	).Scan(&u.CreatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, email, name, password_hash, role, permissions, active, created_at
         FROM users WHERE id=$1`, id)
	return scanUser(row, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, email, name, password_hash, role, permissions, active, created_at
         FROM users WHERE email=$1`, email)
	return scanUser(row, email)
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, email, name, password_hash, role, permissions, active, created_at
         FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash,
			&u.Role, &u.Permissions, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET email=$2, name=$3, password_hash=$4, role=$5, permissions=$6, active=$7
         WHERE id=$1`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Permissions, u.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("user", u.ID)
	}
	return nil
}

// Delete removes the user; deleting an unknown id is a no-op.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

func scanUser(row pgx.Row, key string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.Permissions, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user", key)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
