package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checkout is attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock indicates a reservation or consumption was
	// requested beyond the stock eligible for it.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidTransition indicates an order status change the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)
