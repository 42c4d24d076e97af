package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Service exposes order history queries and post-placement mutations: status
// transitions, cancellation and line changes with totals kept current.
type Service struct {
	repo     orderRepo
	products productRepo
	logger   *log.Logger
}

type orderRepo interface {
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, o *domain.Order) error
	AddLine(ctx context.Context, o *domain.Order, line *domain.OrderLine) error
	RemoveLine(ctx context.Context, o *domain.Order, lineID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo orderRepo, products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, products: products, logger: logger}
}

// GetByNumber returns the order with its lines.
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.repo.GetByOrderNumber(ctx, orderNumber)
}

// ListByCustomer returns the customer's order history, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// ListByStatus returns all orders currently in the given status.
func (s *Service) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.repo.ListByStatus(ctx, status)
}

// UpdateStatus advances the order's state machine. Transitions through
// SHIPPED and DELIVERED stamp the matching timestamp.
func (s *Service) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) (*domain.Order, error) {
	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := o.TransitionTo(status); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Printf("order %s moved to %s", o.OrderNumber, o.Status)
	return o, nil
}

// Cancel cancels the order if its state still permits it.
func (s *Service) Cancel(ctx context.Context, orderNumber string) (*domain.Order, error) {
	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !o.CanBeCancelled() {
		return nil, errors.New("order can no longer be cancelled")
	}
	if err := o.TransitionTo(domain.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// AddLine appends a line snapshotting the product's current price and
// persists the recalculated totals together with it.
func (s *Service) AddLine(ctx context.Context, orderNumber, productID string, quantity int) (*domain.Order, error) {
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	line := domain.OrderLine{
		ProductID: &product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	o.AddLine(line)
	if err := s.repo.AddLine(ctx, o, &o.Lines[len(o.Lines)-1]); err != nil {
		return nil, err
	}
	return o, nil
}

// RemoveLine drops a line and persists the recalculated totals.
func (s *Service) RemoveLine(ctx context.Context, orderNumber, lineID string) (*domain.Order, error) {
	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	found := false
	for _, l := range o.Lines {
		if l.ID == lineID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	o.RemoveLine(lineID)
	if err := s.repo.RemoveLine(ctx, o, lineID); err != nil {
		return nil, err
	}
	return o, nil
}

// Statistics summarizes order volume and delivered revenue.
type Statistics struct {
	TotalOrders       int64           `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// GetStatistics computes totals across all orders; revenue counts delivered
// orders only.
func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	delivered, err := s.repo.ListByStatus(ctx, domain.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, o := range delivered {
		revenue = revenue.Add(o.Total)
	}

	avg := decimal.Zero
	if total > 0 {
		avg = revenue.Div(decimal.NewFromInt(total)).Round(2)
	}

	return &Statistics{
		TotalOrders:       total,
		TotalRevenue:      revenue,
		AverageOrderValue: avg,
	}, nil
}
