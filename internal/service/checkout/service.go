package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	checkoutrepo "storefront/internal/repository/checkout"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// placeholderPassword is hashed into customers created implicitly at
// checkout; the authentication flow overwrites it on first signup.
const placeholderPassword = "changeme123"

const defaultName = "Customer"

// Service converts a shopper's cart into a persisted order.
type Service struct {
	cart   cartService
	repo   checkoutRepo
	logger *log.Logger
}

type cartService interface {
	Items(sessionID string) []domain.CartLine
	Summary(sessionID string) domain.CartSummary
	Clear(sessionID string)
}

type checkoutRepo interface {
	PlaceOrder(ctx context.Context, in checkoutrepo.PlaceOrderInput) (*domain.Order, error)
}

func New(cart cartService, repo checkoutRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{cart: cart, repo: repo, logger: logger}
}

// Input carries the checkout form fields.
type Input struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// CreateOrderFromCart places an order for the session's cart contents. The
// customer is resolved by email or created with best-effort name parsing and
// a placeholder credential. Pricing is the cart summary at this instant;
// later cart changes never affect the placed order. The cart is cleared only
// after the order committed.
func (s *Service) CreateOrderFromCart(ctx context.Context, sessionID string, in Input) (*domain.Order, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}

	items := s.cart.Items(sessionID)
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	customer, err := candidateCustomer(email, in.FullName)
	if err != nil {
		return nil, err
	}

	summary := s.cart.Summary(sessionID)
	order := domain.Order{
		OrderNumber: newOrderNumber(),
		Status:      domain.OrderStatusPending,
		Subtotal:    summary.Subtotal,
		Tax:         summary.Tax,
		Shipping:    summary.Shipping,
		Total:       summary.Total,
		ShipTo: &domain.Address{
			Line1:      strings.TrimSpace(in.AddressLine),
			City:       strings.TrimSpace(in.City),
			State:      strings.TrimSpace(in.State),
			PostalCode: strings.TrimSpace(in.PostalCode),
			Country:    strings.TrimSpace(in.Country),
		},
	}

	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		productID := item.ProductID
		line := domain.OrderLine{
			ProductID: &productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		line.Recalculate()
		lines = append(lines, line)
	}

	placed, err := s.repo.PlaceOrder(ctx, checkoutrepo.PlaceOrderInput{
		Customer: customer,
		Order:    order,
		Lines:    lines,
	})
	if err != nil {
		return nil, err
	}

	s.cart.Clear(sessionID)
	s.logger.Printf("checkout: placed order %s with %d lines for %s", placed.OrderNumber, len(placed.Lines), email)
	return placed, nil
}

// candidateCustomer builds the record used when the email is unknown: first
// token of the full name as given name, remainder as family name, both
// falling back to a placeholder.
func candidateCustomer(email, fullName string) (domain.Customer, error) {
	first := strings.TrimSpace(fullName)
	last := defaultName
	if idx := strings.IndexByte(first, ' '); idx >= 0 {
		last = strings.TrimSpace(first[idx+1:])
		first = strings.TrimSpace(first[:idx])
	}
	if first == "" {
		first = defaultName
	}
	if last == "" {
		last = defaultName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.Customer{}, err
	}

	return domain.Customer{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil
}

// newOrderNumber generates the externally visible identifier. Uniqueness is
// enforced by the order_number unique index; a collision surfaces as a
// persistence error rather than being retried here.
func newOrderNumber() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
