package inventory

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubInventoryRepo struct {
	record       *domain.InventoryRecord
	getErr       error
	created      *domain.InventoryRecord
	createCalls  int
	reserveCalls int
	lastQty      int
}

func (s *stubInventoryRepo) Create(_ context.Context, rec domain.InventoryRecord) (*domain.InventoryRecord, error) {
	s.createCalls++
	s.created = &rec
	return &rec, nil
}

func (s *stubInventoryRepo) GetByProductID(_ context.Context, _ string) (*domain.InventoryRecord, error) {
	return s.record, s.getErr
}

func (s *stubInventoryRepo) ListLowStock(_ context.Context) ([]domain.InventoryRecord, error) {
	return nil, nil
}

func (s *stubInventoryRepo) ListOutOfStock(_ context.Context) ([]domain.InventoryRecord, error) {
	return nil, nil
}

func (s *stubInventoryRepo) Reserve(_ context.Context, _ string, qty int) (*domain.InventoryRecord, error) {
	s.reserveCalls++
	s.lastQty = qty
	return s.record, nil
}

func (s *stubInventoryRepo) Release(_ context.Context, _ string, qty int) (*domain.InventoryRecord, error) {
	s.lastQty = qty
	return s.record, nil
}

func (s *stubInventoryRepo) Consume(_ context.Context, _ string, qty int) (*domain.InventoryRecord, error) {
	s.lastQty = qty
	return s.record, nil
}

func (s *stubInventoryRepo) Restock(_ context.Context, _ string, qty int) (*domain.InventoryRecord, error) {
	s.lastQty = qty
	return s.record, nil
}

func TestEnsureRecordCreatesWhenMissing(t *testing.T) {
	repo := &stubInventoryRepo{getErr: domain.ErrNotFound}
	svc := New(repo, nil)

	rec, err := svc.EnsureRecord(context.Background(), "p1", 30)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("create calls: %d", repo.createCalls)
	}
	if rec.CurrentStock != 30 || rec.AvailableStock != 30 {
		t.Fatalf("record: current=%d available=%d", rec.CurrentStock, rec.AvailableStock)
	}
	if rec.ReorderPoint != 10 || rec.ReorderQuantity != 50 {
		t.Fatalf("defaults: point=%d qty=%d", rec.ReorderPoint, rec.ReorderQuantity)
	}
}

func TestEnsureRecordReturnsExisting(t *testing.T) {
	existing := domain.NewInventoryRecord("p1", 5)
	repo := &stubInventoryRepo{record: existing}
	svc := New(repo, nil)

	rec, err := svc.EnsureRecord(context.Background(), "p1", 30)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("created despite existing record")
	}
	if rec.CurrentStock != 5 {
		t.Fatalf("existing record replaced: %d", rec.CurrentStock)
	}
}

func TestMutationsRejectNonPositiveQuantity(t *testing.T) {
	repo := &stubInventoryRepo{record: domain.NewInventoryRecord("p1", 10)}
	svc := New(repo, nil)
	ctx := context.Background()

	for name, call := range map[string]func() error{
		"reserve": func() error { _, err := svc.Reserve(ctx, "p1", 0); return err },
		"release": func() error { _, err := svc.Release(ctx, "p1", -1); return err },
		"consume": func() error { _, err := svc.Consume(ctx, "p1", 0); return err },
		"restock": func() error { _, err := svc.Restock(ctx, "p1", -5); return err },
	} {
		if err := call(); err == nil {
			t.Fatalf("%s accepted non-positive quantity", name)
		}
	}
	if repo.reserveCalls != 0 {
		t.Fatalf("repo reached with invalid quantity")
	}
}

func TestEnsureRecordPropagatesRepoError(t *testing.T) {
	repo := &stubInventoryRepo{getErr: errors.New("db down")}
	svc := New(repo, nil)

	if _, err := svc.EnsureRecord(context.Background(), "p1", 10); err == nil {
		t.Fatalf("repo error swallowed")
	}
}
