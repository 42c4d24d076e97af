package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository reads and writes catalog products.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}
