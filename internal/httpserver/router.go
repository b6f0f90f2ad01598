package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"sme-storefront/internal/blog"
	"sme-storefront/internal/catalog"
	"sme-storefront/internal/cloudinary"
	"sme-storefront/internal/fulfillment"
	"sme-storefront/internal/recipes"
	"sme-storefront/internal/scan"
)

// Deps carries the services the routes depend on.
type Deps struct {
	Catalog     *catalog.Catalog
	Recipes     *recipes.Library
	Blog        *blog.Library
	Scanner     *scan.Scanner
	Fulfillment *fulfillment.Calculator
	Images      *cloudinary.Builder
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.Catalog))
		api.GET("/products/:slug", getProductHandler(deps.Catalog))
		api.GET("/products/:slug/related", relatedProductsHandler(deps.Catalog))
		if deps.Images != nil {
			api.GET("/products/:slug/images", productImagesHandler(deps.Catalog, deps.Images))
		}

		api.GET("/recipes", listRecipesHandler(deps.Recipes))
		api.GET("/recipes/categories", recipeCategoriesHandler(deps.Recipes))
		api.GET("/recipes/:slug", getRecipeHandler(deps.Recipes))

		api.GET("/blog", listPostsHandler(deps.Blog))
		api.GET("/blog/:slug", getPostHandler(deps.Blog))

		api.GET("/fulfillment/options", fulfillmentOptionsHandler(deps.Fulfillment))
		api.GET("/fulfillment/pickup-dates", pickupDatesHandler)

		if deps.Scanner != nil {
			api.POST("/scan", scanHandler(deps.Scanner, logger))
			api.GET("/scan", scanHistoryHandler(deps.Scanner))
		}
	}

	return router
}
