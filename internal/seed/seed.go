package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	SKU         string
	Title       string
	Description string
	Price       string
	ImageURL    string
	Category    string
	Stock       int
	Featured    bool
}

// Apply inserts catalog and inventory data for manual testing. It is
// idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string]string{
		"Electronics": "electronics",
		"Apparel":     "apparel",
		"Home":        "home",
	}
	categoryIDs := make(map[string]string, len(categories))
	for name, slug := range categories {
		id, err := ensureCategory(ctx, pool, name, slug)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{
			SKU:         "SKU-IPHONE-15",
			Title:       "iPhone 15",
			Description: "128GB, midnight",
			Price:       "999.99",
			ImageURL:    "https://cdn.example.com/img/iphone-15.jpg",
			Category:    "Electronics",
			Stock:       50,
			Featured:    true,
		},
		{
			SKU:         "SKU-ANC-HEADPHONES",
			Title:       "Noise Cancelling Headphones",
			Description: "Over-ear, 30h battery",
			Price:       "249.00",
			ImageURL:    "https://cdn.example.com/img/headphones.jpg",
			Category:    "Electronics",
			Stock:       120,
		},
		{
			SKU:         "SKU-COTTON-TEE",
			Title:       "Cotton T-Shirt",
			Description: "Plain crew neck, unisex",
			Price:       "24.99",
			ImageURL:    "https://cdn.example.com/img/tee.jpg",
			Category:    "Apparel",
			Stock:       300,
		},
		{
			SKU:         "SKU-DENIM-JACKET",
			Title:       "Denim Jacket",
			Description: "Classic fit",
			Price:       "89.50",
			ImageURL:    "https://cdn.example.com/img/denim-jacket.jpg",
			Category:    "Apparel",
			Stock:       8,
			Featured:    true,
		},
		{
			SKU:         "SKU-CERAMIC-MUG",
			Title:       "Ceramic Mug",
			Description: "350ml, dishwasher safe",
			Price:       "12.99",
			ImageURL:    "https://cdn.example.com/img/mug.jpg",
			Category:    "Home",
			Stock:       0,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, slug string) (string, error) {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET slug = EXCLUDED.slug
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, slug).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	const productQ = `
INSERT INTO products (sku, title, description, price, image_url, category_id, stock_quantity, is_active, is_featured)
VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8)
ON CONFLICT (sku) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image_url = EXCLUDED.image_url,
    category_id = EXCLUDED.category_id,
    stock_quantity = EXCLUDED.stock_quantity,
    is_featured = EXCLUDED.is_featured
RETURNING id::text
`
	var productID string
	err := pool.QueryRow(ctx, productQ, p.SKU, p.Title, p.Description, p.Price, p.ImageURL, categoryID, p.Stock, p.Featured).Scan(&productID)
	if err != nil {
		return err
	}

	const inventoryQ = `
INSERT INTO inventory (product_id, current_stock, available_stock, is_low_stock, is_out_of_stock)
VALUES ($1, $2, $2, $2 <= 10, $2 <= 0)
ON CONFLICT (product_id) DO NOTHING
`
	_, err = pool.Exec(ctx, inventoryQ, productID, p.Stock)
	return err
}
