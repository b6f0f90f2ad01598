package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sme-storefront/internal/catalog"
)

func listProductsHandler(c *catalog.Catalog) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		products := c.All()

		if category := ctx.Query("category"); category != "" {
			products = c.ByCategory(category)
		}
		if q := ctx.Query("q"); q != "" {
			products = c.Search(q)
		}
		if ctx.Query("featured") == "true" {
			products = filterProducts(products, func(p catalog.Product) bool { return p.Featured })
		}
		if ctx.Query("in_stock") == "true" {
			products = filterProducts(products, func(p catalog.Product) bool { return p.InStock })
		}

		ctx.JSON(http.StatusOK, gin.H{
			"products": products,
			"count":    len(products),
			"metadata": c.Metadata(),
		})
	}
}

func getProductHandler(c *catalog.Catalog) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		slug := ctx.Param("slug")
		product := c.BySlug(slug)
		if product == nil {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		ctx.JSON(http.StatusOK, product)
	}
}

func relatedProductsHandler(c *catalog.Catalog) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		slug := ctx.Param("slug")
		limit := 3
		if raw := ctx.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		related := c.Related(slug, limit)
		if related == nil {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"products": related, "count": len(related)})
	}
}

func filterProducts(products []catalog.Product, keep func(catalog.Product) bool) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
