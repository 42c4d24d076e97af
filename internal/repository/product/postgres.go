package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `
p.id::text, p.sku, p.title, COALESCE(p.description, ''), p.price, COALESCE(p.image_url, ''),
p.category_id::text, COALESCE(c.name, ''), p.stock_quantity, p.is_active, p.is_featured, p.created_at
`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
ORDER BY p.created_at DESC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.is_active
ORDER BY p.created_at DESC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.is_active AND p.is_featured
ORDER BY p.created_at DESC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.is_active AND p.category_id = $1
ORDER BY p.created_at DESC
`
	return r.queryProducts(ctx, q, categoryID)
}

func (r *postgresRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.is_active AND (p.title ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%')
ORDER BY p.created_at DESC
`
	return r.queryProducts(ctx, q, query)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`
	var p domain.Product
	var categoryID *string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.SKU, &p.Title, &p.Description, &p.Price, &p.ImageURL,
		&categoryID, &p.CategoryName, &p.StockQuantity, &p.IsActive, &p.IsFeatured, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	p.CategoryID = categoryID
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (sku, title, description, price, image_url, category_id, stock_quantity, is_active, is_featured)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8, $9)
ON CONFLICT (sku) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image_url = EXCLUDED.image_url,
    category_id = EXCLUDED.category_id,
    stock_quantity = EXCLUDED.stock_quantity,
    is_active = EXCLUDED.is_active,
    is_featured = EXCLUDED.is_featured
RETURNING id::text, created_at
`
	err := r.pool.QueryRow(ctx, q,
		p.SKU, p.Title, p.Description, p.Price, p.ImageURL, p.CategoryID,
		p.StockQuantity, p.IsActive, p.IsFeatured,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create sku=%s error=%v", p.SKU, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		var categoryID *string
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Title, &p.Description, &p.Price, &p.ImageURL,
			&categoryID, &p.CategoryName, &p.StockQuantity, &p.IsActive, &p.IsFeatured, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
