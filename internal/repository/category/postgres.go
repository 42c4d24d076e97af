package category

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, COALESCE(slug, ''), created_at
FROM categories
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const q = `
SELECT id::text, name, COALESCE(slug, ''), created_at
FROM categories
WHERE id = $1
`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, NULLIF($2, ''))
ON CONFLICT (name) DO UPDATE SET slug = EXCLUDED.slug
RETURNING id::text, created_at
`
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
