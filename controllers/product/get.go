package productController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
	"github.com/arushi-dev/vastra-api/pincode"
)

// GetProductByID returns a single product with its images, stock buckets and
// reviews.
// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Images").Preload("Quantity").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		var reviews []models.Review
		if err := db.Where("product_id = ?", product.ID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product, "reviews": reviews})
	}
}

// DeliveryEstimate answers the product-page "deliver to <pincode>?" widget.
// GET /delivery-estimate?pincode=NNNNNN
func DeliveryEstimate(pc *pincode.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		pin := c.Query("pincode")
		if !pincode.Valid(pin) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pincode must be a valid 6-digit code"})
			return
		}

		svc, err := pc.Lookup(c.Request.Context(), pin)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not check serviceability, please try again later"})
			return
		}
		c.JSON(http.StatusOK, svc)
	}
}
