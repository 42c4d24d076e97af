package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusRefunded},
}

// CanTransitionTo reports whether next is a legal successor state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus validates a status string supplied by a caller.
func ParseOrderStatus(v string) (OrderStatus, error) {
	switch OrderStatus(v) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return OrderStatus(v), nil
	}
	return "", fmt.Errorf("unknown order status %q", v)
}

// Address is the denormalized shipping destination captured at checkout.
type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is the durable record of a placed purchase. The order number is the
// externally visible identifier, distinct from the internal id.
type Order struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Status      OrderStatus     `json:"status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Shipping    decimal.Decimal `json:"shipping"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	CustomerID  string          `json:"customerId"`
	ShipTo      *Address        `json:"shipTo,omitempty"`
	Lines       []OrderLine     `json:"lines,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	ShippedAt   *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time      `json:"deliveredAt,omitempty"`
}

// OrderLine is one snapshotted product entry within a placed order. The unit
// price is copied from the product at order-creation time and never updated
// afterwards. ProductID is a weak reference kept for display and audit; it is
// nil when the product no longer exists.
type OrderLine struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	ProductID *string         `json:"productId,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Recalculate rederives the line total from unit price, quantity and discount.
func (l *OrderLine) Recalculate() {
	l.Total = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
}

// CanBeCancelled reports whether cancellation is still permitted.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// IsCompleted reports whether the order reached its sole terminal completed
// state.
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusDelivered
}

// TotalItems is the summed quantity across all lines.
func (o *Order) TotalItems() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// AddLine attaches a line and recalculates totals.
func (o *Order) AddLine(line OrderLine) {
	line.OrderID = o.ID
	o.Lines = append(o.Lines, line)
	o.RecalculateTotals()
}

// RemoveLine detaches the line with the given id, if present, and
// recalculates totals.
func (o *Order) RemoveLine(lineID string) {
	for i, l := range o.Lines {
		if l.ID == lineID {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			break
		}
	}
	o.RecalculateTotals()
}

// RecalculateTotals rederives line totals, the subtotal and the grand total.
// Totals are never left stale after line changes.
func (o *Order) RecalculateTotals() {
	subtotal := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].Recalculate()
		subtotal = subtotal.Add(o.Lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(o.Lines[i].Quantity))))
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(o.Tax).Add(o.Shipping).Sub(o.Discount)
}

// TransitionTo moves the order to the next status, stamping shipped/delivered
// timestamps as the state machine passes through them.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	now := time.Now()
	switch next {
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	}
	return nil
}
