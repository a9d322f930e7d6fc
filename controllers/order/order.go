package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/middleware"
	"github.com/arushi-dev/vastra-api/models"
	"github.com/arushi-dev/vastra-api/services"
)

// GetMyOrders lists the caller's orders, newest first.
// GET /user/orders
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Product").
			Preload("Product.Images").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByID returns one of the caller's orders.
// GET /user/orders/:orderID
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Product").
			Preload("Product.Images").
			Preload("Address").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GetAllOrders lists every order for the back office.
// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		q := db.
			Preload("Product").
			Preload("Address").
			Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if paid := c.Query("paid"); paid != "" {
			q = q.Where("payment_success = ?", paid == "true")
		}
		if err := q.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus lets the back office move an order along the fulfilment
// flow (shipped, delivered, ...).
// PUT /admin/orders/:orderID/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := models.OrderStatus(req.Status)
		switch status {
		case models.OrderStatusConfirmed, models.OrderStatusReadyToShip,
			models.OrderStatusShipped, models.OrderStatusDelivered,
			models.OrderStatusReturned, models.OrderStatusCancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// ShipOrder manifests the forward shipment with the courier and stores the
// waybill on the order.
// POST /admin/orders/:orderID/ship
func ShipOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseID(c, "orderID")
		if !ok {
			return
		}
		order, svcErr := svc.ShipOrder(c.Request.Context(), orderID)
		if svcErr != nil {
			c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
