package auth

import (
	"atelier/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configures all authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)            // POST /api/v1/auth/register
		authGroup.POST("/login", controller.Login)                  // POST /api/v1/auth/login
		authGroup.POST("/refresh", controller.Refresh)              // POST /api/v1/auth/refresh
		authGroup.POST("/reset-password", controller.ResetPassword) // POST /api/v1/auth/reset-password

		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.POST("/logout", controller.Logout)                // POST /api/v1/auth/logout
			protected.PUT("/change-password", controller.ChangePassword) // PUT  /api/v1/auth/change-password
			protected.GET("/me", controller.Me)                          // GET  /api/v1/auth/me
		}
	}
}
