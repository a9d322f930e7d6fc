package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/arushi-dev/vastra-api/controllers/admin"
	orderControllers "github.com/arushi-dev/vastra-api/controllers/order"
	productControllers "github.com/arushi-dev/vastra-api/controllers/product"
	userControllers "github.com/arushi-dev/vastra-api/controllers/user"
	"github.com/arushi-dev/vastra-api/middleware"
)

// SetupAdminRoutes registers the "/admin/*" back-office endpoints. Requires
// the admin API key.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAPIKey(d.Cfg.HTTP.AdminAPIKey))
	{
		adminGroup.GET("/admins", adminController.GetAllAdmins(d.DB))
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(d.DB))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(d.DB))
			productAdmin.PUT("/:id/quantity", productControllers.UpdateQuantity(d.DB))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(d.DB))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(d.DB))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(d.DB))
			orderAdmin.GET("/feed", orderControllers.Feed)
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(d.DB))
			orderAdmin.POST("/:orderID/ship", orderControllers.ShipOrder(d.Orders))
		}

		returnAdmin := adminGroup.Group("/returns")
		{
			returnAdmin.GET("", adminController.GetAllReturns(d.DB))
			returnAdmin.POST("/:id/approve", adminController.ApproveReturn(d.Returns))
			returnAdmin.POST("/:id/final-approve", adminController.FinalApproveReturn(d.Returns))
		}

		adminMgmt := adminGroup.Group("/admin-management")
		{
			adminMgmt.GET("/pending", adminController.ListPendingAdmins(d.DB))
			adminMgmt.POST("/approve", adminController.ApproveAdmin(d.DB))
			adminMgmt.POST("/reject", adminController.RejectAdmin(d.DB))
		}
	}
}
