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

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	p.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(id, code, name, category, unit)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at`,
		p.ID, p.Code, p.Name, p.Category, p.Unit,
	).Scan(&p.CreatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.DB.QueryRow(ctx,
		`SELECT id, code, name, category, unit, created_at
         FROM products WHERE id=$1`, id,
	).Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Unit, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("product", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*models.Product, error) {
	var p models.Product
	err := r.DB.QueryRow(ctx,
		`SELECT id, code, name, category, unit, created_at
         FROM products WHERE code=$1`, code,
	).Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Unit, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("product", code)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, code, name, category, unit, created_at
         FROM products ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Category, &p.Unit, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE products SET code=$2, name=$3, category=$4, unit=$5 WHERE id=$1`,
		p.ID, p.Code, p.Name, p.Category, p.Unit)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}
	return nil
}

// Delete removes the product; deleting an unknown id is a no-op.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}
