package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(cart CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSessionID(c)
		c.JSON(http.StatusOK, gin.H{
			"items":   cart.Items(sessionID),
			"summary": cart.Summary(sessionID),
		})
	}
}

func addCartItemHandler(cart CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			respondValidation(c, "productId required")
			return
		}
		if err := cart.AddItem(c.Request.Context(), cartSessionID(c), req.ProductID, req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		sessionID := cartSessionID(c)
		c.JSON(http.StatusOK, gin.H{
			"items":   cart.Items(sessionID),
			"summary": cart.Summary(sessionID),
		})
	}
}

func updateCartItemHandler(cart CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "quantity required")
			return
		}
		sessionID := cartSessionID(c)
		cart.UpdateQuantity(sessionID, c.Param("productId"), req.Quantity)
		c.JSON(http.StatusOK, gin.H{
			"items":   cart.Items(sessionID),
			"summary": cart.Summary(sessionID),
		})
	}
}

func removeCartItemHandler(cart CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSessionID(c)
		cart.RemoveItem(sessionID, c.Param("productId"))
		c.JSON(http.StatusOK, gin.H{
			"items":   cart.Items(sessionID),
			"summary": cart.Summary(sessionID),
		})
	}
}

func clearCartHandler(cart CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart.Clear(cartSessionID(c))
		c.Status(http.StatusNoContent)
	}
}
