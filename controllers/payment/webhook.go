package paymentControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arushi-dev/vastra-api/middleware"
	"github.com/arushi-dev/vastra-api/services"
)

// webhookEvent is the slice of Razorpay's event envelope we act on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook marks orders paid on payment.captured and releases reserved stock
// on payment.failed. The signature was verified by middleware; both paths are
// idempotent, so Razorpay's retries are safe.
// POST /payments/webhook
func Webhook(svc *services.OrderService, broadcast func(orders interface{})) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(middleware.WebhookBodyKey)
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing webhook body"})
			return
		}

		var event webhookEvent
		if err := json.Unmarshal(raw.([]byte), &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
			return
		}

		payment := event.Payload.Payment.Entity
		switch event.Event {
		case "payment.captured":
			paid, svcErr := svc.ConfirmPayment(c.Request.Context(), payment.OrderID, payment.ID)
			if svcErr != nil {
				c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
				return
			}
			if len(paid) > 0 && broadcast != nil {
				broadcast(paid)
			}
			c.JSON(http.StatusOK, gin.H{"message": "payment recorded"})
		case "payment.failed":
			if svcErr := svc.CancelPayment(c.Request.Context(), payment.OrderID); svcErr != nil {
				c.JSON(svcErr.HTTPStatus(), gin.H{"error": svcErr.Message})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "payment failure recorded"})
		default:
			// Unsubscribed events are acknowledged so the gateway stops retrying.
			c.JSON(http.StatusOK, gin.H{"message": "ignored"})
		}
	}
}
