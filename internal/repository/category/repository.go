package category

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
}
