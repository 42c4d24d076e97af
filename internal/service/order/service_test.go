package order

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type stubOrderRepo struct {
	order         *domain.Order
	getErr        error
	byStatus      []domain.Order
	byStatusErr   error
	count         int64
	countErr      error
	updateErr     error
	updateCalls   int
	lastUpdated   *domain.Order
	addLineErr    error
	removeLineErr error
}

func (s *stubOrderRepo) GetByOrderNumber(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListByStatus(_ context.Context, _ domain.OrderStatus) ([]domain.Order, error) {
	return s.byStatus, s.byStatusErr
}

func (s *stubOrderRepo) CountAll(_ context.Context) (int64, error) {
	return s.count, s.countErr
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, o *domain.Order) error {
	s.updateCalls++
	s.lastUpdated = o
	return s.updateErr
}

func (s *stubOrderRepo) AddLine(_ context.Context, _ *domain.Order, _ *domain.OrderLine) error {
	return s.addLineErr
}

func (s *stubOrderRepo) RemoveLine(_ context.Context, _ *domain.Order, _ string) error {
	return s.removeLineErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func TestUpdateStatusPersistsTransition(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{OrderNumber: "N1", Status: domain.OrderStatusProcessing}}
	svc := New(repo, &stubProductRepo{}, nil)

	o, err := svc.UpdateStatus(context.Background(), "N1", domain.OrderStatusShipped)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if o.Status != domain.OrderStatusShipped {
		t.Fatalf("status: %s", o.Status)
	}
	if o.ShippedAt == nil {
		t.Fatalf("shipped timestamp not stamped")
	}
	if repo.updateCalls != 1 {
		t.Fatalf("persist calls: %d", repo.updateCalls)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{OrderNumber: "N1", Status: domain.OrderStatusPending}}
	svc := New(repo, &stubProductRepo{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "N1", domain.OrderStatusDelivered)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("illegal transition persisted")
	}
}

func TestCancelPendingOrder(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{OrderNumber: "N1", Status: domain.OrderStatusPending}}
	svc := New(repo, &stubProductRepo{}, nil)

	o, err := svc.Cancel(context.Background(), "N1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Status != domain.OrderStatusCancelled {
		t.Fatalf("status: %s", o.Status)
	}
}

func TestCancelShippedOrderFails(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{OrderNumber: "N1", Status: domain.OrderStatusShipped}}
	svc := New(repo, &stubProductRepo{}, nil)

	if _, err := svc.Cancel(context.Background(), "N1"); err == nil {
		t.Fatalf("shipped order cancelled")
	}
	if repo.updateCalls != 0 {
		t.Fatalf("cancellation persisted")
	}
}

func TestAddLineSnapshotsPriceAndRecalculates(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{
		OrderNumber: "N1",
		Status:      domain.OrderStatusPending,
		Lines: []domain.OrderLine{
			{ID: "l1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00"), Total: decimal.RequireFromString("10.00")},
		},
		Subtotal: decimal.RequireFromString("10.00"),
		Total:    decimal.RequireFromString("10.00"),
	}}
	products := &stubProductRepo{product: &domain.Product{ID: "p2", Price: decimal.RequireFromString("15.00")}}
	svc := New(repo, products, nil)

	o, err := svc.AddLine(context.Background(), "N1", "p2", 2)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	if len(o.Lines) != 2 {
		t.Fatalf("line count: %d", len(o.Lines))
	}
	if !o.Subtotal.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("subtotal: %s", o.Subtotal)
	}
	if !o.Lines[1].UnitPrice.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("unit price not snapshotted: %s", o.Lines[1].UnitPrice)
	}
}

func TestAddLineRejectsNonPositiveQuantity(t *testing.T) {
	svc := New(&stubOrderRepo{}, &stubProductRepo{}, nil)
	if _, err := svc.AddLine(context.Background(), "N1", "p1", 0); err == nil {
		t.Fatalf("zero quantity accepted")
	}
}

func TestRemoveLineUnknownID(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{
		OrderNumber: "N1",
		Lines:       []domain.OrderLine{{ID: "l1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")}},
	}}
	svc := New(repo, &stubProductRepo{}, nil)

	_, err := svc.RemoveLine(context.Background(), "N1", "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStatistics(t *testing.T) {
	repo := &stubOrderRepo{
		count: 4,
		byStatus: []domain.Order{
			{Total: decimal.RequireFromString("100.00")},
			{Total: decimal.RequireFromString("50.50")},
		},
	}
	svc := New(repo, &stubProductRepo{}, nil)

	stats, err := svc.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalOrders != 4 {
		t.Fatalf("total orders: %d", stats.TotalOrders)
	}
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("150.50")) {
		t.Fatalf("revenue: %s", stats.TotalRevenue)
	}
	if !stats.AverageOrderValue.Equal(decimal.RequireFromString("37.63")) {
		t.Fatalf("average: %s", stats.AverageOrderValue)
	}
}

func TestGetStatisticsNoOrders(t *testing.T) {
	svc := New(&stubOrderRepo{}, &stubProductRepo{}, nil)

	stats, err := svc.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if !stats.AverageOrderValue.IsZero() {
		t.Fatalf("average with no orders: %s", stats.AverageOrderValue)
	}
}
