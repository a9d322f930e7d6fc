package productController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
)

type imageInput struct {
	URL  string `json:"url" binding:"required"`
	Blur string `json:"blur"`
}

type quantityInput struct {
	Sm       int `json:"sm" binding:"min=0"`
	Md       int `json:"md" binding:"min=0"`
	Lg       int `json:"lg" binding:"min=0"`
	Xl       int `json:"xl" binding:"min=0"`
	DoubleXl int `json:"doublexl" binding:"min=0"`
}

type createProductInput struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Price       string        `json:"price" binding:"required"`
	Category    string        `json:"category" binding:"required"`
	Images      []imageInput  `json:"images"`
	Quantity    quantityInput `json:"quantity"`
}

// CreateProduct adds a catalog entry together with its stock buckets.
// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		price, err := decimal.NewFromString(input.Price)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		product := models.Product{
			Title:       input.Title,
			Description: input.Description,
			Price:       price,
			Category:    input.Category,
			Quantity: models.Quantity{
				Sm:       input.Quantity.Sm,
				Md:       input.Quantity.Md,
				Lg:       input.Quantity.Lg,
				Xl:       input.Quantity.Xl,
				DoubleXl: input.Quantity.DoubleXl,
			},
		}
		for _, img := range input.Images {
			product.Images = append(product.Images, models.ProductImage{URL: img.URL, Blur: img.Blur})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
