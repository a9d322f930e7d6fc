package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/arushi-dev/vastra-api/auth"
)

// SetupAuthRoutes registers the "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestUser(d.DB, d.Cfg.JWT.Secret, d.Cfg.JWT.GuestExpiration))
	}
}
