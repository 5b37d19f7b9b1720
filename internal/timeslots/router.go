package timeslots

import (
	"atelier/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTimeSlotRoutes configures all time-slot routes
func SetupTimeSlotRoutes(rg *gin.RouterGroup, controller *Controller) {
	slots := rg.Group("/timeslots")
	{
		// Public browsing
		slots.GET("/available", controller.GetAvailable) // GET /api/v1/timeslots/available
		slots.GET("/:id", controller.GetTimeSlot)        // GET /api/v1/timeslots/:id

		// Admin mutations
		admin := slots.Group("")
		admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateTimeSlot)       // POST   /api/v1/timeslots
			admin.POST("/bulk", controller.BulkGenerate)    // POST   /api/v1/timeslots/bulk
			admin.PUT("/:id", controller.UpdateTimeSlot)    // PUT    /api/v1/timeslots/:id
			admin.DELETE("/:id", controller.DeleteTimeSlot) // DELETE /api/v1/timeslots/:id
		}
	}
}
