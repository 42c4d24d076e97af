package cart

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type stubProductRepo struct {
	products map[string]*domain.Product
	err      error
	calls    int
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func newTestService(repo *stubProductRepo) *Service {
	return New(repo, nil, decimal.RequireFromString("5.00"), decimal.RequireFromString("0.05"))
}

func catalog() *stubProductRepo {
	return &stubProductRepo{products: map[string]*domain.Product{
		"iphone": {ID: "iphone", Title: "iPhone 15", Price: decimal.RequireFromString("999.99")},
		"tee":    {ID: "tee", Title: "Cotton T-Shirt", Price: decimal.RequireFromString("24.99")},
	}}
}

func TestSummaryPricing(t *testing.T) {
	svc := newTestService(catalog())
	ctx := context.Background()

	if err := svc.AddItem(ctx, "s1", "iphone", 2); err != nil {
		t.Fatalf("add iphone: %v", err)
	}
	if err := svc.AddItem(ctx, "s1", "tee", 1); err != nil {
		t.Fatalf("add tee: %v", err)
	}

	sum := svc.Summary("s1")
	if !sum.Subtotal.Equal(decimal.RequireFromString("2024.97")) {
		t.Fatalf("subtotal: %s", sum.Subtotal)
	}
	if !sum.Shipping.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("shipping: %s", sum.Shipping)
	}
	if !sum.Tax.Equal(decimal.RequireFromString("101.25")) {
		t.Fatalf("tax: %s", sum.Tax)
	}
	if !sum.Total.Equal(decimal.RequireFromString("2131.22")) {
		t.Fatalf("total: %s", sum.Total)
	}
}

func TestSummaryEmptyCart(t *testing.T) {
	svc := newTestService(catalog())

	sum := svc.Summary("s1")
	if !sum.Subtotal.IsZero() || !sum.Shipping.IsZero() || !sum.Tax.IsZero() || !sum.Total.IsZero() {
		t.Fatalf("empty cart summary not all zero: %+v", sum)
	}
}

func TestSummaryIsIdempotent(t *testing.T) {
	svc := newTestService(catalog())
	if err := svc.AddItem(context.Background(), "s1", "tee", 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	first := svc.Summary("s1")
	second := svc.Summary("s1")
	if !first.Total.Equal(second.Total) || !first.Tax.Equal(second.Tax) {
		t.Fatalf("repeated reads differ: %+v vs %+v", first, second)
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	repo := catalog()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.AddItem(ctx, "s1", "tee", 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.AddItem(ctx, "s1", "tee", 2); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items := svc.Items("s1")
	if len(items) != 1 {
		t.Fatalf("line count: %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("quantity: %d", items[0].Quantity)
	}
	if repo.calls != 1 {
		t.Fatalf("catalog hit on increment: %d calls", repo.calls)
	}
}

func TestAddItemClampsQuantity(t *testing.T) {
	svc := newTestService(catalog())

	if err := svc.AddItem(context.Background(), "s1", "tee", -5); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := svc.Items("s1")
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("clamping failed: %+v", items)
	}
}

func TestAddVanishedProductIsIgnored(t *testing.T) {
	svc := newTestService(catalog())

	if err := svc.AddItem(context.Background(), "s1", "ghost", 1); err != nil {
		t.Fatalf("add vanished product: %v", err)
	}
	if items := svc.Items("s1"); len(items) != 0 {
		t.Fatalf("vanished product added: %+v", items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc := newTestService(catalog())
	ctx := context.Background()
	if err := svc.AddItem(ctx, "s1", "tee", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	svc.UpdateQuantity("s1", "tee", 7)
	if items := svc.Items("s1"); items[0].Quantity != 7 {
		t.Fatalf("quantity: %d", items[0].Quantity)
	}

	svc.UpdateQuantity("s1", "tee", 0)
	if items := svc.Items("s1"); items[0].Quantity != 1 {
		t.Fatalf("quantity not clamped: %d", items[0].Quantity)
	}

	svc.UpdateQuantity("s1", "ghost", 3)
	if items := svc.Items("s1"); len(items) != 1 {
		t.Fatalf("unknown product update changed cart: %+v", items)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc := newTestService(catalog())
	ctx := context.Background()
	if err := svc.AddItem(ctx, "s1", "iphone", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddItem(ctx, "s1", "tee", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	svc.RemoveItem("s1", "iphone")
	items := svc.Items("s1")
	if len(items) != 1 || items[0].ProductID != "tee" {
		t.Fatalf("after remove: %+v", items)
	}

	svc.Clear("s1")
	if items := svc.Items("s1"); len(items) != 0 {
		t.Fatalf("after clear: %+v", items)
	}
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	svc := newTestService(catalog())
	ctx := context.Background()
	if err := svc.AddItem(ctx, "s1", "tee", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddItem(ctx, "s1", "iphone", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := svc.Items("s1")
	if items[0].ProductID != "tee" || items[1].ProductID != "iphone" {
		t.Fatalf("order not preserved: %+v", items)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newTestService(catalog())
	ctx := context.Background()
	if err := svc.AddItem(ctx, "s1", "tee", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if items := svc.Items("s2"); len(items) != 0 {
		t.Fatalf("session leak: %+v", items)
	}
}
