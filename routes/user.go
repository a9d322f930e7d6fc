package routes

import (
	"github.com/gin-gonic/gin"

	addressControllers "github.com/arushi-dev/vastra-api/controllers/address"
	cartControllers "github.com/arushi-dev/vastra-api/controllers/cart"
	orderControllers "github.com/arushi-dev/vastra-api/controllers/order"
	paymentControllers "github.com/arushi-dev/vastra-api/controllers/payment"
	returnControllers "github.com/arushi-dev/vastra-api/controllers/returns"
	reviewControllers "github.com/arushi-dev/vastra-api/controllers/review"
	userControllers "github.com/arushi-dev/vastra-api/controllers/user"
	"github.com/arushi-dev/vastra-api/middleware"
)

// SetupUserRoutes registers the "/user/*" endpoints. Requires a JWT.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireToken(d.Cfg.JWT.Secret))
	{
		userGroup.GET("", userControllers.GetUser(d.DB))
		userGroup.PUT("", userControllers.UpdateUser(d.DB))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(d.DB))
			cartGroup.POST("", cartControllers.UpdateCartItem(d.DB))
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(d.DB))
			cartGroup.DELETE("", cartControllers.ClearCart(d.DB))
		}

		addressGroup := userGroup.Group("/addresses")
		{
			addressGroup.GET("", addressControllers.ListAddresses(d.Address))
			addressGroup.POST("", addressControllers.CreateAddress(d.Address))
			addressGroup.DELETE("/:id", addressControllers.DeleteAddress(d.Address))
		}

		userGroup.POST("/checkout", paymentControllers.Checkout(d.Orders))

		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.GET("", orderControllers.GetMyOrders(d.DB))
			orderGroup.GET("/:orderID", orderControllers.GetOrderByID(d.DB))
		}

		returnGroup := userGroup.Group("/returns")
		{
			returnGroup.GET("", returnControllers.GetMyReturns(d.DB))
			returnGroup.POST("", returnControllers.RequestReturn(d.Returns))
		}

		userGroup.POST("/reviews", reviewControllers.AddReview(d.Reviews))
	}
}
