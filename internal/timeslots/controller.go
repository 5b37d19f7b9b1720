package timeslots

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetAvailable handles GET /api/v1/timeslots/available
func (c *Controller) GetAvailable(ctx *gin.Context) {
	itemID := ctx.Query("item_id")
	startDate := ctx.Query("start_date")
	endDate := ctx.Query("end_date")

	slots, err := c.service.GetAvailableTimeSlots(ctx.Request.Context(), itemID, startDate, endDate)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Available time slots retrieved successfully", AvailabilityResponse{
		ItemID:    itemID,
		StartDate: startDate,
		EndDate:   endDate,
		Count:     len(slots),
		Slots:     slots,
	})
}

// GetTimeSlot handles GET /api/v1/timeslots/:id
func (c *Controller) GetTimeSlot(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid time slot ID", nil, nil)
		return
	}

	slot, err := c.service.GetTimeSlot(ctx.Request.Context(), id)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Time slot retrieved successfully", slot)
}

// CreateTimeSlot handles POST /api/v1/timeslots (admin)
func (c *Controller) CreateTimeSlot(ctx *gin.Context) {
	var req CreateTimeSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	slot, err := c.service.CreateTimeSlot(ctx.Request.Context(), req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.Created(ctx, "Time slot created successfully", slot)
}

// BulkGenerate handles POST /api/v1/timeslots/bulk (admin)
func (c *Controller) BulkGenerate(ctx *gin.Context) {
	var req BulkGenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.BulkGenerate(ctx.Request.Context(), req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.Created(ctx, "Time slots generated successfully", result)
}

// UpdateTimeSlot handles PUT /api/v1/timeslots/:id (admin)
func (c *Controller) UpdateTimeSlot(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid time slot ID", nil, nil)
		return
	}

	var req UpdateTimeSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	slot, err := c.service.UpdateTimeSlot(ctx.Request.Context(), id, req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Time slot updated successfully", slot)
}

// DeleteTimeSlot handles DELETE /api/v1/timeslots/:id (admin)
func (c *Controller) DeleteTimeSlot(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid time slot ID", nil, nil)
		return
	}

	if err := c.service.DeleteTimeSlot(ctx.Request.Context(), id); err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Time slot deleted successfully", nil)
}
