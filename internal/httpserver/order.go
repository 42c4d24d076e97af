package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
	"github.com/gin-gonic/gin"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

type addLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// listOrdersHandler serves order history filtered by customer email or by
// status. One of the two filters is required; a full dump is never offered.
func listOrdersHandler(svc *ordersvc.Service, customers CustomerRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if email := c.Query("email"); email != "" {
			customer, err := customers.GetByEmail(ctx, email)
			if err != nil {
				respondError(c, err)
				return
			}
			orders, err := svc.ListByCustomer(ctx, customer.ID)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"orders": orders})
			return
		}

		if raw := c.Query("status"); raw != "" {
			status, err := domain.ParseOrderStatus(raw)
			if err != nil {
				respondValidation(c, err.Error())
				return
			}
			orders, err := svc.ListByStatus(ctx, status)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"orders": orders})
			return
		}

		respondValidation(c, "email or status query parameter required")
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func updateOrderStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
			respondValidation(c, "status required")
			return
		}
		status, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			respondValidation(c, err.Error())
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), c.Param("orderNumber"), status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func cancelOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Cancel(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			if err.Error() == "order can no longer be cancelled" {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func addOrderLineHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			respondValidation(c, "productId required")
			return
		}
		order, err := svc.AddLine(c.Request.Context(), c.Param("orderNumber"), req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func removeOrderLineHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.RemoveLine(c.Request.Context(), c.Param("orderNumber"), c.Param("lineId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func orderStatisticsHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.GetStatistics(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
