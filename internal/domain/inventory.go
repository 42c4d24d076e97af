package domain

import "time"

// InventoryRecord tracks per-product stock bookkeeping: the physical count,
// the portion set aside for in-progress orders, and the derived availability
// flags. Mutate it only through the methods below; every mutator ends with a
// single recompute step so availableStock and the flags are never stale.
type InventoryRecord struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"productId"`
	CurrentStock    int        `json:"currentStock"`
	MinimumStock    int        `json:"minimumStock"`
	ReorderPoint    int        `json:"reorderPoint"`
	ReorderQuantity int        `json:"reorderQuantity"`
	MaxStock        *int       `json:"maxStock,omitempty"`
	ReservedStock   int        `json:"reservedStock"`
	AvailableStock  int        `json:"availableStock"`
	IsLowStock      bool       `json:"isLowStock"`
	IsOutOfStock    bool       `json:"isOutOfStock"`
	LastRestocked   *time.Time `json:"lastRestocked,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewInventoryRecord builds a record for a product with an initial physical
// count and derived fields already computed.
func NewInventoryRecord(productID string, initialStock int) *InventoryRecord {
	rec := &InventoryRecord{
		ProductID:       productID,
		CurrentStock:    initialStock,
		ReorderPoint:    10,
		ReorderQuantity: 50,
	}
	rec.recompute()
	return rec
}

// CanReserveStock reports whether qty could be reserved right now.
func (r *InventoryRecord) CanReserveStock(qty int) bool {
	return r.AvailableStock >= qty
}

// ReserveStock sets qty aside for an in-progress order. It fails without
// changing the record when fewer than qty units are available.
func (r *InventoryRecord) ReserveStock(qty int) error {
	if !r.CanReserveStock(qty) {
		return ErrInsufficientStock
	}
	r.ReservedStock += qty
	r.recompute()
	return nil
}

// ReleaseReservedStock returns qty previously reserved units to the available
// pool. The reserved count is floored at zero; the call always succeeds.
func (r *InventoryRecord) ReleaseReservedStock(qty int) {
	r.ReservedStock -= qty
	if r.ReservedStock < 0 {
		r.ReservedStock = 0
	}
	r.recompute()
}

// ConsumeStock deducts qty from the physical count, releasing the matching
// reservation. It fails without changing the record when fewer than qty units
// exist.
func (r *InventoryRecord) ConsumeStock(qty int) error {
	if r.CurrentStock < qty {
		return ErrInsufficientStock
	}
	r.CurrentStock -= qty
	r.ReservedStock -= qty
	if r.ReservedStock < 0 {
		r.ReservedStock = 0
	}
	r.recompute()
	return nil
}

// AddStock restocks qty units, capped at MaxStock when a cap is set, and
// records the restock time.
func (r *InventoryRecord) AddStock(qty int) {
	r.CurrentStock += qty
	if r.MaxStock != nil && r.CurrentStock > *r.MaxStock {
		r.CurrentStock = *r.MaxStock
	}
	now := time.Now()
	r.LastRestocked = &now
	r.recompute()
}

// NeedsRestocking reports whether the physical count fell to the reorder
// point.
func (r *InventoryRecord) NeedsRestocking() bool {
	return r.CurrentStock <= r.ReorderPoint
}

// StockPercentage is the physical count as a percentage of MaxStock, or 0
// when no cap is set.
func (r *InventoryRecord) StockPercentage() int {
	if r.MaxStock == nil || *r.MaxStock == 0 {
		return 0
	}
	return int(float64(r.CurrentStock) / float64(*r.MaxStock) * 100)
}

// recompute rederives availableStock and the low/out-of-stock flags. Invoked
// at the end of every mutator so the invariant holds after each call:
// availableStock = max(0, currentStock - reservedStock).
func (r *InventoryRecord) recompute() {
	r.AvailableStock = r.CurrentStock - r.ReservedStock
	if r.AvailableStock < 0 {
		r.AvailableStock = 0
	}
	r.IsOutOfStock = r.CurrentStock <= 0
	r.IsLowStock = r.CurrentStock <= r.ReorderPoint
}
