package httpserver

import (
	"context"
	"net/http"

	"storefront/internal/domain"
	inventorysvc "storefront/internal/service/inventory"
	"github.com/gin-gonic/gin"
)

type inventoryMutationRequest struct {
	Quantity int `json:"quantity"`
}

func getInventoryHandler(svc *inventorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.GetByProduct(c.Request.Context(), c.Param("productId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func listLowStockHandler(svc *inventorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.ListLowStock(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	}
}

func listOutOfStockHandler(svc *inventorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.ListOutOfStock(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	}
}

// inventoryMutationHandler serves the four ledger mutations behind one shape:
// a product id in the path and a positive quantity in the body.
func inventoryMutationHandler(svc *inventorysvc.Service, op string) gin.HandlerFunc {
	var mutate func(ctx context.Context, productID string, qty int) (*domain.InventoryRecord, error)
	switch op {
	case "reserve":
		mutate = svc.Reserve
	case "release":
		mutate = svc.Release
	case "consume":
		mutate = svc.Consume
	case "restock":
		mutate = svc.Restock
	}

	return func(c *gin.Context) {
		var req inventoryMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "quantity required")
			return
		}
		if req.Quantity <= 0 {
			respondValidation(c, "quantity must be positive")
			return
		}
		rec, err := mutate(c.Request.Context(), c.Param("productId"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
