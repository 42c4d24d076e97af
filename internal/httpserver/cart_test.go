package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	checkoutrepo "storefront/internal/repository/checkout"
	checkoutsvc "storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCartService struct {
	items       []domain.CartLine
	summary     domain.CartSummary
	addErr      error
	lastSession string
	lastProduct string
	lastQty     int
	clearCalls  int
}

func (s *stubCartService) AddItem(_ context.Context, sessionID, productID string, quantity int) error {
	s.lastSession = sessionID
	s.lastProduct = productID
	s.lastQty = quantity
	return s.addErr
}

func (s *stubCartService) UpdateQuantity(sessionID, productID string, quantity int) {
	s.lastSession = sessionID
	s.lastProduct = productID
	s.lastQty = quantity
}

func (s *stubCartService) RemoveItem(sessionID, productID string) {
	s.lastSession = sessionID
	s.lastProduct = productID
}

func (s *stubCartService) Clear(sessionID string) {
	s.lastSession = sessionID
	s.clearCalls++
}

func (s *stubCartService) Items(_ string) []domain.CartLine    { return s.items }
func (s *stubCartService) Summary(_ string) domain.CartSummary { return s.summary }

type stubCategoryRepo struct {
	categories []domain.Category
	err        error
}

func (s *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

type stubCustomerRepo struct {
	customer *domain.Customer
	err      error
}

func (s *stubCustomerRepo) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return s.customer, s.err
}

func testRouter(cart CartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(logDiscard(), nil, Deps{
		CartSvc:      cart,
		CategoryRepo: &stubCategoryRepo{},
		CustomerRepo: &stubCustomerRepo{},
	})
}

func TestCartSessionMiddleware_AssignsCookie(t *testing.T) {
	router := testRouter(&stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cartSessionCookie {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("session cookie not set")
	}
}

func TestCartSessionMiddleware_ReusesCookie(t *testing.T) {
	cart := &stubCartService{}
	router := testRouter(cart)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: cartSessionCookie, Value: "existing-session"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if cart.lastSession != "existing-session" {
		t.Fatalf("session not reused: %s", cart.lastSession)
	}
}

func TestAddCartItemHandler(t *testing.T) {
	cart := &stubCartService{
		items: []domain.CartLine{{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")}},
	}
	router := testRouter(cart)

	body := `{"productId":"p1","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if cart.lastProduct != "p1" || cart.lastQty != 2 {
		t.Fatalf("service not invoked correctly: product=%s qty=%d", cart.lastProduct, cart.lastQty)
	}
	if !strings.Contains(rec.Body.String(), `"items"`) || !strings.Contains(rec.Body.String(), `"summary"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddCartItemHandler_MissingProduct(t *testing.T) {
	router := testRouter(&stubCartService{})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type stubCheckoutRepo struct {
	placed *domain.Order
	err    error
}

func (s *stubCheckoutRepo) PlaceOrder(_ context.Context, _ checkoutrepo.PlaceOrderInput) (*domain.Order, error) {
	return s.placed, s.err
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cart := &stubCartService{}
	router := buildRouter(logDiscard(), nil, Deps{
		CartSvc:      cart,
		CheckoutSvc:  checkoutsvc.New(cart, &stubCheckoutRepo{}, logDiscard()),
		CategoryRepo: &stubCategoryRepo{},
		CustomerRepo: &stubCustomerRepo{},
	})

	body := `{"email":"jane@example.com","fullName":"Jane Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if cart.clearCalls != 0 {
		t.Fatalf("cart cleared on failed checkout")
	}
}

func TestCheckoutHandler_MissingEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cart := &stubCartService{
		items:   []domain.CartLine{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")}},
		summary: domain.CartSummary{},
	}
	router := buildRouter(logDiscard(), nil, Deps{
		CartSvc:      cart,
		CheckoutSvc:  checkoutsvc.New(cart, &stubCheckoutRepo{}, logDiscard()),
		CategoryRepo: &stubCategoryRepo{},
		CustomerRepo: &stubCustomerRepo{},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}
