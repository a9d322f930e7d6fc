package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/config"
	"github.com/arushi-dev/vastra-api/pincode"
	"github.com/arushi-dev/vastra-api/services"
)

// Deps carries everything the route groups need to build their handlers.
type Deps struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Orders  *services.OrderService
	Returns *services.ReturnService
	Reviews *services.ReviewService
	Address *services.AddressService
	Pincode *pincode.Client
}

// Setup is the single entry point that wires up every route group.
func Setup(r *gin.Engine, d Deps) {
	SetupAuthRoutes(r, d)
	SetupCatalogRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupGuestRoutes(r, d)
	SetupPaymentRoutes(r, d)
	SetupAdminRoutes(r, d)
}
