package httpserver

import (
	"net/http"
	"strings"

	checkoutsvc "storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func checkoutHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondValidation(c, "invalid checkout payload")
			return
		}

		order, err := svc.CreateOrderFromCart(c.Request.Context(), cartSessionID(c), in)
		if err != nil {
			if strings.Contains(err.Error(), "required") {
				respondValidation(c, err.Error())
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
