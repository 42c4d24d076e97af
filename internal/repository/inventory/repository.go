package inventory

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists inventory records. The stock mutators run under a
// row-level lock so two callers can never pass the availability check against
// the same stale read.
type Repository interface {
	Create(ctx context.Context, rec domain.InventoryRecord) (*domain.InventoryRecord, error)
	GetByProductID(ctx context.Context, productID string) (*domain.InventoryRecord, error)
	ListLowStock(ctx context.Context) ([]domain.InventoryRecord, error)
	ListOutOfStock(ctx context.Context) ([]domain.InventoryRecord, error)

	Reserve(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
	Release(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
	Consume(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
	Restock(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
}
