package bookings

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier/internal/shared/utils/response"
	"atelier/internal/users"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// callerIdentity pulls the authenticated user and role from the gin context
// (set by the JWT middleware)
func callerIdentity(ctx *gin.Context) (uuid.UUID, bool, bool) {
	userIDValue, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false, false
	}
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return uuid.Nil, false, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, false
	}

	roleValue, _ := ctx.Get("user_role")
	role, _ := roleValue.(string)

	return userID, role == string(users.RoleAdmin), true
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, _, ok := callerIdentity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.Created(ctx, "Booking created successfully", booking)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	userID, isAdmin, ok := callerIdentity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, userID, isAdmin)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Booking retrieved successfully", booking)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	userID, isAdmin, ok := callerIdentity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CancelBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cancellation, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, userID, isAdmin, req.Reason)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Booking cancelled successfully", cancellation)
}

// UpdateStatus handles PATCH /api/v1/bookings/:id/status (admin)
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	_, isAdmin, ok := callerIdentity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.UpdateBookingStatus(ctx.Request.Context(), bookingID, Status(req.Status), isAdmin)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Booking status updated successfully", booking)
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, _, ok := callerIdentity(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Bookings retrieved successfully", BookingListResponse{
		Bookings: bookings,
		Count:    len(bookings),
		Limit:    limit,
		Offset:   offset,
	})
}

// GetBookingsByTimeSlot handles GET /api/v1/bookings/timeslot/:id (admin)
func (c *Controller) GetBookingsByTimeSlot(ctx *gin.Context) {
	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid time slot ID", nil, nil)
		return
	}

	bookings, err := c.service.GetBookingsByTimeSlot(ctx.Request.Context(), slotID)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Bookings retrieved successfully", bookings)
}
