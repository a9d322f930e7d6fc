package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arushi-dev/vastra-api/middleware"
	"github.com/arushi-dev/vastra-api/services"
)

type CheckoutRequest struct {
	AddressID uint                `json:"address_id" binding:"required"`
	Items     []services.LineItem `json:"items" binding:"required,dive"`
}

// Checkout turns the cart contents the client submits into a gateway order
// plus pending order rows, and returns what the payment widget needs.
// POST /user/checkout
func Checkout(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		intent, svcErr := svc.PlaceOrder(c.Request.Context(), middleware.UserID(c), req.AddressID, req.Items)
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusOK, intent)
	}
}

// GuestCheckout is the logged-out variant.
// POST /guest/checkout
func GuestCheckout(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		intent, svcErr := svc.PlaceOrderForGuest(c.Request.Context(), middleware.UserID(c), req.AddressID, req.Items)
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusOK, intent)
	}
}
