package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `
id::text, order_number, status, subtotal, tax_amount, shipping_amount, discount_amount, total_amount,
customer_id::text, ship_line1, ship_city, ship_state, ship_postal_code, ship_country,
created_at, updated_at, shipped_at, delivered_at
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

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.fetchWithLines(ctx, q, id)
}

func (r *postgresRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	return r.fetchWithLines(ctx, q, orderNumber)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	return r.queryOrders(ctx, q, customerID)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE status = $1
ORDER BY created_at DESC
`
	return r.queryOrders(ctx, q, string(status))
}

func (r *postgresRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateStatus persists the status and shipped/delivered stamps already
// applied to the domain order.
func (r *postgresRepo) UpdateStatus(ctx context.Context, o *domain.Order) error {
	const q = `
UPDATE orders
SET status = $1, shipped_at = $2, delivered_at = $3, updated_at = now()
WHERE id = $4
`
	cmd, err := r.pool.Exec(ctx, q, string(o.Status), o.ShippedAt, o.DeliveredAt, o.ID)
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", o.ID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddLine inserts the line and writes the already-recalculated totals in one
// transaction, so an order row never disagrees with its lines.
func (r *postgresRepo) AddLine(ctx context.Context, o *domain.Order, line *domain.OrderLine) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertQ = `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price, discount_amount, total_price)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	if err := tx.QueryRow(ctx, insertQ,
		o.ID, line.ProductID, line.Quantity, line.UnitPrice, line.Discount, line.Total,
	).Scan(&line.ID, &line.CreatedAt); err != nil {
		return err
	}

	if err := updateTotals(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveLine deletes the line and writes the recalculated totals in one
// transaction.
func (r *postgresRepo) RemoveLine(ctx context.Context, o *domain.Order, lineID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE id = $1 AND order_id = $2`, lineID, o.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := updateTotals(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func updateTotals(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	const q = `
UPDATE orders
SET subtotal = $1, total_amount = $2, updated_at = now()
WHERE id = $3
`
	_, err := tx.Exec(ctx, q, o.Subtotal, o.Total, o.ID)
	return err
}

func (r *postgresRepo) fetchWithLines(ctx context.Context, q string, arg interface{}) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQ = `
SELECT id::text, order_id::text, product_id::text, quantity, unit_price, discount_amount, total_price, created_at
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQ, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.ProductID, &line.Quantity,
			&line.UnitPrice, &line.Discount, &line.Total, &line.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status string
	var line1, city, state, postal, country *string
	err := row.Scan(
		&o.ID, &o.OrderNumber, &status, &o.Subtotal, &o.Tax, &o.Shipping, &o.Discount, &o.Total,
		&o.CustomerID, &line1, &city, &state, &postal, &country,
		&o.CreatedAt, &o.UpdatedAt, &o.ShippedAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	if line1 != nil || city != nil || country != nil {
		o.ShipTo = &domain.Address{}
		if line1 != nil {
			o.ShipTo.Line1 = *line1
		}
		if city != nil {
			o.ShipTo.City = *city
		}
		if state != nil {
			o.ShipTo.State = *state
		}
		if postal != nil {
			o.ShipTo.PostalCode = *postal
		}
		if country != nil {
			o.ShipTo.Country = *country
		}
	}
	return &o, nil
}
