package bookings

import (
	"atelier/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		bookings.POST("", controller.CreateBooking)            // POST  /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)            // GET   /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST  /api/v1/bookings/:id/cancel
		bookings.PATCH("/:id/status", controller.UpdateStatus) // PATCH /api/v1/bookings/:id/status (admin enforced in service)
	}

	admin := rg.Group("/bookings")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/timeslot/:id", controller.GetBookingsByTimeSlot) // GET /api/v1/bookings/timeslot/:id
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}
}
