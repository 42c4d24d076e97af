package httpserver

import (
	"context"
	"log"

	"storefront/internal/domain"
	checkoutsvc "storefront/internal/service/checkout"
	inventorysvc "storefront/internal/service/inventory"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services and repositories the handlers need.
type Deps struct {
	ProductSvc   *productsvc.Service
	CartSvc      CartService
	CheckoutSvc  *checkoutsvc.Service
	OrderSvc     *ordersvc.Service
	InventorySvc *inventorysvc.Service
	CategoryRepo CategoryRepo
	CustomerRepo CustomerRepo
}

// CartService is the slice of the cart the handlers use.
type CartService interface {
	AddItem(ctx context.Context, sessionID, productID string, quantity int) error
	UpdateQuantity(sessionID, productID string, quantity int)
	RemoveItem(sessionID, productID string)
	Clear(sessionID string)
	Items(sessionID string) []domain.CartLine
	Summary(sessionID string) domain.CartSummary
}

type CategoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type CustomerRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/:id", getProductHandler(deps.ProductSvc))
	api.GET("/categories", listCategoriesHandler(deps.CategoryRepo))

	cart := api.Group("/cart", cartSessionMiddleware())
	cart.GET("", getCartHandler(deps.CartSvc))
	cart.POST("/items", addCartItemHandler(deps.CartSvc))
	cart.PATCH("/items/:productId", updateCartItemHandler(deps.CartSvc))
	cart.DELETE("/items/:productId", removeCartItemHandler(deps.CartSvc))
	cart.DELETE("", clearCartHandler(deps.CartSvc))

	api.POST("/checkout", cartSessionMiddleware(), checkoutHandler(deps.CheckoutSvc))

	api.GET("/orders", listOrdersHandler(deps.OrderSvc, deps.CustomerRepo))
	api.GET("/orders/:orderNumber", getOrderHandler(deps.OrderSvc))
	api.POST("/orders/:orderNumber/status", updateOrderStatusHandler(deps.OrderSvc))
	api.POST("/orders/:orderNumber/cancel", cancelOrderHandler(deps.OrderSvc))
	api.POST("/orders/:orderNumber/lines", addOrderLineHandler(deps.OrderSvc))
	api.DELETE("/orders/:orderNumber/lines/:lineId", removeOrderLineHandler(deps.OrderSvc))
	api.GET("/order-statistics", orderStatisticsHandler(deps.OrderSvc))

	api.GET("/inventory/low-stock", listLowStockHandler(deps.InventorySvc))
	api.GET("/inventory/out-of-stock", listOutOfStockHandler(deps.InventorySvc))
	api.GET("/inventory/:productId", getInventoryHandler(deps.InventorySvc))
	api.POST("/inventory/:productId/reserve", inventoryMutationHandler(deps.InventorySvc, "reserve"))
	api.POST("/inventory/:productId/release", inventoryMutationHandler(deps.InventorySvc, "release"))
	api.POST("/inventory/:productId/consume", inventoryMutationHandler(deps.InventorySvc, "consume"))
	api.POST("/inventory/:productId/restock", inventoryMutationHandler(deps.InventorySvc, "restock"))

	return router
}
