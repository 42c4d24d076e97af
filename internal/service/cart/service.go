package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Service holds every shopper's in-progress cart, keyed by session id. Carts
// are ephemeral in-process state: they are created on first touch and must be
// reconstructable from empty at any time. Session expiry belongs to the
// surrounding web layer, not to this service.
type Service struct {
	products    productRepo
	logger      *log.Logger
	shippingFee decimal.Decimal
	taxRate     decimal.Decimal

	mu       sync.Mutex
	sessions map[string]*session
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// session is one shopper's cart: a product-id keyed line map with insertion
// order preserved for display. Its mutex serializes concurrent requests from
// the same session (double-click add, for instance), closing the
// read-then-write race on the line map.
type session struct {
	mu    sync.Mutex
	order []string
	lines map[string]*domain.CartLine
}

func New(products productRepo, logger *log.Logger, shippingFee, taxRate decimal.Decimal) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		products:    products,
		logger:      logger,
		shippingFee: shippingFee,
		taxRate:     taxRate,
		sessions:    make(map[string]*session),
	}
}

func (s *Service) session(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{lines: make(map[string]*domain.CartLine)}
		s.sessions[sessionID] = sess
	}
	return sess
}

// AddItem increments the existing line for the product or creates a new one
// from live catalog data, clamping the increment to at least 1. A product
// that no longer exists is logged and ignored so a stale page never breaks
// the shopping flow.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) error {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	if line, ok := sess.lines[productID]; ok {
		line.Quantity += quantity
		return nil
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("cart: product %s not found, add ignored", productID)
			return nil
		}
		return err
	}

	sess.lines[productID] = &domain.CartLine{
		ProductID:    product.ID,
		Title:        product.Title,
		ImageURL:     product.ImageURL,
		CategoryName: product.CategoryName,
		UnitPrice:    product.Price,
		Quantity:     quantity,
	}
	sess.order = append(sess.order, productID)
	return nil
}

// UpdateQuantity sets the quantity on an existing line, clamped to a minimum
// of 1. Unknown lines are ignored.
func (s *Service) UpdateQuantity(sessionID, productID string, quantity int) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	line, ok := sess.lines[productID]
	if !ok {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	line.Quantity = quantity
}

// RemoveItem deletes the line for the product, if present.
func (s *Service) RemoveItem(sessionID, productID string) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, ok := sess.lines[productID]; !ok {
		return
	}
	delete(sess.lines, productID)
	for i, id := range sess.order {
		if id == productID {
			sess.order = append(sess.order[:i], sess.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (s *Service) Clear(sessionID string) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lines = make(map[string]*domain.CartLine)
	sess.order = nil
}

// Items returns a snapshot of the current lines in insertion order.
func (s *Service) Items(sessionID string) []domain.CartLine {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	items := make([]domain.CartLine, 0, len(sess.order))
	for _, id := range sess.order {
		if line, ok := sess.lines[id]; ok {
			items = append(items, *line)
		}
	}
	return items
}

// Summary computes pricing fresh from the current lines: shipping is a flat
// fee on any non-empty cart, tax a flat rate on the subtotal rounded to two
// decimals half-up.
func (s *Service) Summary(sessionID string) domain.CartSummary {
	items := s.Items(sessionID)

	subtotal := decimal.Zero
	for _, line := range items {
		subtotal = subtotal.Add(line.Subtotal())
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = s.shippingFee
	}
	tax := subtotal.Mul(s.taxRate).Round(2)

	return domain.CartSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
