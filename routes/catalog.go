package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/arushi-dev/vastra-api/controllers/product"
	reviewControllers "github.com/arushi-dev/vastra-api/controllers/review"
)

// SetupCatalogRoutes registers the public storefront browse endpoints. No
// authentication: product pages render for everyone.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(d.DB))
		products.GET("/:id", productControllers.GetProductByID(d.DB))
		products.GET("/:id/reviews", reviewControllers.ListProductReviews(d.DB))
	}

	r.GET("/categories", productControllers.GetCategories(d.DB))
	r.GET("/delivery-estimate", productControllers.DeliveryEstimate(d.Pincode))
}
