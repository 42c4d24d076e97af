package checkout

import (
	"context"

	"storefront/internal/domain"
)

// PlaceOrderInput carries everything order placement persists. Customer is a
// candidate record used only when no customer exists for its email yet.
type PlaceOrderInput struct {
	Customer domain.Customer
	Order    domain.Order
	Lines    []domain.OrderLine
}

// Repository persists a checkout as a single all-or-nothing transaction:
// customer resolution, order creation and every order line commit together or
// not at all.
type Repository interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error)
}
