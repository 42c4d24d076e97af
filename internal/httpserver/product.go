package httpserver

import (
	"net/http"

	productsvc "storefront/internal/service/product"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			products interface{}
			err      error
		)
		switch {
		case c.Query("q") != "":
			products, err = svc.Search(ctx, c.Query("q"))
		case c.Query("category") != "":
			products, err = svc.ListByCategory(ctx, c.Query("category"))
		case c.Query("featured") == "true":
			products, err = svc.ListFeatured(ctx)
		default:
			products, err = svc.List(ctx)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func listCategoriesHandler(repo CategoryRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repo.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
