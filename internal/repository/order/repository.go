package order

import (
	"context"

	"storefront/internal/domain"
)

// Repository reads placed orders and persists post-placement mutations.
// Order placement itself lives in the checkout repository, which needs a
// wider transaction.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, o *domain.Order) error
	AddLine(ctx context.Context, o *domain.Order, line *domain.OrderLine) error
	RemoveLine(ctx context.Context, o *domain.Order, lineID string) error
}
