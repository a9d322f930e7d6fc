package returnControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/middleware"
	"github.com/arushi-dev/vastra-api/models"
	"github.com/arushi-dev/vastra-api/services"
)

type requestReturnInput struct {
	OrderID      uint   `json:"order_id" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	ExchangeSize string `json:"exchange_size"`
}

// RequestReturn files a return or exchange for a delivered order.
// POST /user/returns
func RequestReturn(svc *services.ReturnService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input requestReturnInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ret, svcErr := svc.RequestReturn(c.Request.Context(), services.RequestReturnInput{
			UserID:       middleware.UserID(c),
			OrderID:      input.OrderID,
			Type:         models.ReturnType(input.Type),
			Reason:       input.Reason,
			ExchangeSize: input.ExchangeSize,
		})
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusCreated, ret)
	}
}

// GetMyReturns lists the caller's return requests.
// GET /user/returns
func GetMyReturns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var returns []models.Return
		if err := db.Where("user_id = ?", userID).
			Preload("Order").
			Preload("Order.Product").
			Order("created_at DESC").
			Find(&returns).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch returns"})
			return
		}
		c.JSON(http.StatusOK, returns)
	}
}
