package routes

import (
	"github.com/gin-gonic/gin"

	addressControllers "github.com/arushi-dev/vastra-api/controllers/address"
	cartControllers "github.com/arushi-dev/vastra-api/controllers/cart"
	paymentControllers "github.com/arushi-dev/vastra-api/controllers/payment"
	"github.com/arushi-dev/vastra-api/middleware"
)

// SetupGuestRoutes registers the "/guest/*" endpoints. Guests carry the same
// JWT scheme as users, with a guest role claim and a shorter expiry.
func SetupGuestRoutes(r *gin.Engine, d Deps) {
	guestGroup := r.Group("/guest")
	guestGroup.Use(middleware.RequireToken(d.Cfg.JWT.Secret))
	{
		cartGroup := guestGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetGuestCart(d.DB))
			cartGroup.POST("", cartControllers.UpdateGuestCartItem(d.DB))
			cartGroup.DELETE("/:item_id", cartControllers.DeleteGuestCartItem(d.DB))
		}

		guestGroup.POST("/addresses", addressControllers.CreateAddress(d.Address))
		guestGroup.POST("/checkout", paymentControllers.GuestCheckout(d.Orders))
	}
}
