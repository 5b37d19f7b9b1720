package workshops

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

// ListWorkshops handles GET /api/v1/workshops
func (c *Controller) ListWorkshops(ctx *gin.Context) {
	kind := ctx.Query("kind")
	activeOnly := ctx.DefaultQuery("active_only", "true") == "true"

	workshops, err := c.service.ListWorkshops(ctx.Request.Context(), kind, activeOnly)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Workshops retrieved successfully", workshops)
}

// GetWorkshop handles GET /api/v1/workshops/:id
func (c *Controller) GetWorkshop(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid workshop ID", nil, nil)
		return
	}

	workshop, err := c.service.GetWorkshop(ctx.Request.Context(), id)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Workshop retrieved successfully", workshop)
}

// CreateWorkshop handles POST /api/v1/workshops (admin)
func (c *Controller) CreateWorkshop(ctx *gin.Context) {
	var req CreateWorkshopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	workshop, err := c.service.CreateWorkshop(ctx.Request.Context(), req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.Created(ctx, "Workshop created successfully", workshop)
}

// UpdateWorkshop handles PUT /api/v1/workshops/:id (admin)
func (c *Controller) UpdateWorkshop(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid workshop ID", nil, nil)
		return
	}

	var req UpdateWorkshopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	workshop, err := c.service.UpdateWorkshop(ctx.Request.Context(), id, req)
	if err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Workshop updated successfully", workshop)
}

// DeleteWorkshop handles DELETE /api/v1/workshops/:id (admin)
func (c *Controller) DeleteWorkshop(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid workshop ID", nil, nil)
		return
	}

	if err := c.service.DeleteWorkshop(ctx.Request.Context(), id); err != nil {
		response.Fail(ctx, err)
		return
	}

	response.OK(ctx, "Workshop deleted successfully", nil)
}
