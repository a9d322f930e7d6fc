package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/arushi-dev/vastra-api/controllers/order"
	paymentControllers "github.com/arushi-dev/vastra-api/controllers/payment"
	"github.com/arushi-dev/vastra-api/middleware"
)

// SetupPaymentRoutes registers the gateway callback. The webhook is
// authenticated by its HMAC signature, not a session.
func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	payments := r.Group("/payments")
	{
		payments.POST("/webhook",
			middleware.VerifyRazorpayWebhook(d.Cfg.Razorpay.WebhookSecret),
			paymentControllers.Webhook(d.Orders, orderControllers.Broadcast),
		)
	}
}
