package checkout

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

// PlaceOrder resolves or creates the customer, inserts the order and all its
// lines inside one transaction. A failure at any step rolls everything back,
// including a customer created earlier in the same call.
func (r *postgresRepo) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	customerID, err := resolveCustomer(ctx, tx, in.Customer)
	if err != nil {
		return nil, err
	}

	order := in.Order
	order.CustomerID = customerID

	const orderQ = `
INSERT INTO orders (order_number, status, subtotal, tax_amount, shipping_amount, discount_amount, total_amount,
                    customer_id, ship_line1, ship_city, ship_state, ship_postal_code, ship_country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''))
RETURNING id::text, created_at, updated_at
`
	var line1, city, state, postal, country string
	if order.ShipTo != nil {
		line1 = order.ShipTo.Line1
		city = order.ShipTo.City
		state = order.ShipTo.State
		postal = order.ShipTo.PostalCode
		country = order.ShipTo.Country
	}
	if err := tx.QueryRow(ctx, orderQ,
		order.OrderNumber, string(order.Status),
		order.Subtotal, order.Tax, order.Shipping, order.Discount, order.Total,
		customerID, line1, city, state, postal, country,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		r.logger.Printf("checkout repo: insert order number=%s error=%v", order.OrderNumber, err)
		return nil, err
	}

	const lineQ = `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price, discount_amount, total_price)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	for _, line := range in.Lines {
		line.OrderID = order.ID
		productID, err := resolveProduct(ctx, tx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if productID == nil && line.ProductID != nil {
			// The line is still written for audit; it just loses its catalog link.
			r.logger.Printf("checkout repo: product %s vanished before order %s, line kept without reference",
				*line.ProductID, order.OrderNumber)
		}
		line.ProductID = productID
		if err := tx.QueryRow(ctx, lineQ,
			order.ID, line.ProductID, line.Quantity, line.UnitPrice, line.Discount, line.Total,
		).Scan(&line.ID, &line.CreatedAt); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}

// resolveCustomer returns the id for the candidate's email, creating the
// customer inside the surrounding transaction when absent.
func resolveCustomer(ctx context.Context, tx pgx.Tx, c domain.Customer) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `SELECT id::text FROM customers WHERE email = $1`, c.Email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	const q = `
INSERT INTO customers (email, first_name, last_name, password_hash, is_active)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
RETURNING id::text
`
	if err := tx.QueryRow(ctx, q, c.Email, c.FirstName, c.LastName, c.PasswordHash, c.IsActive).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// resolveProduct verifies the referenced product still exists; a vanished
// product yields a nil reference, not an error.
func resolveProduct(ctx context.Context, tx pgx.Tx, productID *string) (*string, error) {
	if productID == nil {
		return nil, nil
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, *productID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return productID, nil
}
