package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (email, first_name, last_name, password_hash, is_active)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
RETURNING id::text, created_at
`
	if err := r.pool.QueryRow(ctx, q, c.Email, c.FirstName, c.LastName, c.PasswordHash, c.IsActive).Scan(&c.ID, &c.CreatedAt); err != nil {
		r.logger.Printf("customer repo: create email=%s error=%v", c.Email, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, COALESCE(first_name, ''), COALESCE(last_name, ''), password_hash, is_active, created_at
FROM customers
WHERE email = $1
`
	return r.fetch(ctx, q, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, COALESCE(first_name, ''), COALESCE(last_name, ''), password_hash, is_active, created_at
FROM customers
WHERE id = $1
`
	return r.fetch(ctx, q, id)
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg interface{}) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.PasswordHash, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
