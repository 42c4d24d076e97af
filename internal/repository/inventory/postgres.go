package inventory

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inventoryColumns = `
id::text, product_id::text, current_stock, minimum_stock, reorder_point, reorder_quantity, max_stock,
reserved_stock, available_stock, is_low_stock, is_out_of_stock, last_restocked, created_at, updated_at
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

func (r *postgresRepo) Create(ctx context.Context, rec domain.InventoryRecord) (*domain.InventoryRecord, error) {
	const q = `
INSERT INTO inventory (product_id, current_stock, minimum_stock, reorder_point, reorder_quantity, max_stock,
                       reserved_stock, available_stock, is_low_stock, is_out_of_stock, last_restocked)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (product_id) DO UPDATE
SET current_stock = EXCLUDED.current_stock,
    minimum_stock = EXCLUDED.minimum_stock,
    reorder_point = EXCLUDED.reorder_point,
    reorder_quantity = EXCLUDED.reorder_quantity,
    max_stock = EXCLUDED.max_stock,
    reserved_stock = EXCLUDED.reserved_stock,
    available_stock = EXCLUDED.available_stock,
    is_low_stock = EXCLUDED.is_low_stock,
    is_out_of_stock = EXCLUDED.is_out_of_stock,
    updated_at = now()
RETURNING id::text, created_at, updated_at
`
	if err := r.pool.QueryRow(ctx, q,
		rec.ProductID, rec.CurrentStock, rec.MinimumStock, rec.ReorderPoint, rec.ReorderQuantity, rec.MaxStock,
		rec.ReservedStock, rec.AvailableStock, rec.IsLowStock, rec.IsOutOfStock, rec.LastRestocked,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		r.logger.Printf("inventory repo: create product_id=%s error=%v", rec.ProductID, err)
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRepo) GetByProductID(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	const q = `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1`
	rec, err := scanRecord(r.pool.QueryRow(ctx, q, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepo) ListLowStock(ctx context.Context) ([]domain.InventoryRecord, error) {
	const q = `SELECT ` + inventoryColumns + ` FROM inventory WHERE is_low_stock ORDER BY current_stock ASC`
	return r.queryRecords(ctx, q)
}

func (r *postgresRepo) ListOutOfStock(ctx context.Context) ([]domain.InventoryRecord, error) {
	const q = `SELECT ` + inventoryColumns + ` FROM inventory WHERE is_out_of_stock ORDER BY product_id`
	return r.queryRecords(ctx, q)
}

func (r *postgresRepo) Reserve(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	return r.mutate(ctx, productID, func(rec *domain.InventoryRecord) error {
		return rec.ReserveStock(qty)
	})
}

func (r *postgresRepo) Release(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	return r.mutate(ctx, productID, func(rec *domain.InventoryRecord) error {
		rec.ReleaseReservedStock(qty)
		return nil
	})
}

func (r *postgresRepo) Consume(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	return r.mutate(ctx, productID, func(rec *domain.InventoryRecord) error {
		return rec.ConsumeStock(qty)
	})
}

func (r *postgresRepo) Restock(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	return r.mutate(ctx, productID, func(rec *domain.InventoryRecord) error {
		rec.AddStock(qty)
		return nil
	})
}

// mutate loads the record under FOR UPDATE, applies the domain mutator and
// writes the result back inside one transaction. The row lock serializes
// concurrent mutators per record.
func (r *postgresRepo) mutate(ctx context.Context, productID string, fn func(*domain.InventoryRecord) error) (*domain.InventoryRecord, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 FOR UPDATE`
	rec, err := scanRecord(tx.QueryRow(ctx, q, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := fn(rec); err != nil {
		return nil, err
	}

	const updateQ = `
UPDATE inventory
SET current_stock = $1, reserved_stock = $2, available_stock = $3,
    is_low_stock = $4, is_out_of_stock = $5, last_restocked = $6, updated_at = now()
WHERE id = $7
`
	if _, err := tx.Exec(ctx, updateQ,
		rec.CurrentStock, rec.ReservedStock, rec.AvailableStock,
		rec.IsLowStock, rec.IsOutOfStock, rec.LastRestocked, rec.ID,
	); err != nil {
		r.logger.Printf("inventory repo: update product_id=%s error=%v", productID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepo) queryRecords(ctx context.Context, q string, args ...interface{}) ([]domain.InventoryRecord, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InventoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanRecord(row pgx.Row) (*domain.InventoryRecord, error) {
	var rec domain.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.CurrentStock, &rec.MinimumStock, &rec.ReorderPoint, &rec.ReorderQuantity,
		&rec.MaxStock, &rec.ReservedStock, &rec.AvailableStock, &rec.IsLowStock, &rec.IsOutOfStock,
		&rec.LastRestocked, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
