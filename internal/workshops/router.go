package workshops

import (
	"atelier/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWorkshopRoutes configures all workshop routes
func SetupWorkshopRoutes(rg *gin.RouterGroup, controller *Controller) {
	workshops := rg.Group("/workshops")
	{
		// Public browsing
		workshops.GET("", controller.ListWorkshops)    // GET /api/v1/workshops
		workshops.GET("/:id", controller.GetWorkshop)  // GET /api/v1/workshops/:id

		// Admin mutations
		admin := workshops.Group("")
		admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateWorkshop)       // POST   /api/v1/workshops
			admin.PUT("/:id", controller.UpdateWorkshop)    // PUT    /api/v1/workshops/:id
			admin.DELETE("/:id", controller.DeleteWorkshop) // DELETE /api/v1/workshops/:id
		}
	}
}
