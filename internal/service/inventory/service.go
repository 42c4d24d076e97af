package inventory

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
)

// Service fronts the inventory ledger. Quantity validation happens here; the
// per-record serialization happens in the repository's row-locked mutators.
type Service struct {
	repo   inventoryRepo
	logger *log.Logger
}

type inventoryRepo interface {
	Create(ctx context.Context, rec domain.InventoryRecord) (*domain.InventoryRecord, error)
	GetByProductID(ctx context.Context, productID string) (*domain.InventoryRecord, error)
	ListLowStock(ctx context.Context) ([]domain.InventoryRecord, error)
	ListOutOfStock(ctx context.Context) ([]domain.InventoryRecord, error)
	Reserve(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
	Release(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
	Consume(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
	Restock(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
}

func New(repo inventoryRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

// EnsureRecord creates the ledger entry for a product if one does not exist
// yet.
func (s *Service) EnsureRecord(ctx context.Context, productID string, initialStock int) (*domain.InventoryRecord, error) {
	if rec, err := s.repo.GetByProductID(ctx, productID); err == nil {
		return rec, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, *domain.NewInventoryRecord(productID, initialStock))
}

// GetByProduct returns the ledger entry for the product.
func (s *Service) GetByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	return s.repo.GetByProductID(ctx, productID)
}

// ListLowStock returns records at or below their reorder point.
func (s *Service) ListLowStock(ctx context.Context) ([]domain.InventoryRecord, error) {
	return s.repo.ListLowStock(ctx)
}

// ListOutOfStock returns records with no physical stock left.
func (s *Service) ListOutOfStock(ctx context.Context) ([]domain.InventoryRecord, error) {
	return s.repo.ListOutOfStock(ctx)
}

// Reserve sets stock aside for an in-progress order.
func (s *Service) Reserve(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	if qty <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	rec, err := s.repo.Reserve(ctx, productID, qty)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("inventory: reserved %d of product %s, %d available", qty, productID, rec.AvailableStock)
	return rec, nil
}

// Release returns previously reserved stock to the available pool.
func (s *Service) Release(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	if qty <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	return s.repo.Release(ctx, productID, qty)
}

// Consume deducts fulfilled stock from the physical count.
func (s *Service) Consume(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	if qty <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	rec, err := s.repo.Consume(ctx, productID, qty)
	if err != nil {
		return nil, err
	}
	if rec.NeedsRestocking() {
		s.logger.Printf("inventory: product %s at %d units, reorder point %d", productID, rec.CurrentStock, rec.ReorderPoint)
	}
	return rec, nil
}

// Restock adds received stock, capped at the record's max when set.
func (s *Service) Restock(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error) {
	if qty <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	return s.repo.Restock(ctx, productID, qty)
}
