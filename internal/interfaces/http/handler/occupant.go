package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	realestateapp "github.com/poloatt/attadia-backend/internal/application/realestate"
)

// OccupantHandler handles occupant (inquilino) HTTP requests
type OccupantHandler struct {
	BaseHandler
	occupantService *realestateapp.OccupantService
}

// NewOccupantHandler creates a new OccupantHandler
func NewOccupantHandler(occupantService *realestateapp.OccupantService) *OccupantHandler {
	return &OccupantHandler{occupantService: occupantService}
}

// RegisterRoutes registers occupant routes
func (h *OccupantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	occupants := rg.Group("/occupants")
	{
		occupants.POST("", h.Create)
		occupants.GET("", h.List)
		occupants.GET("/:id", h.GetByID)
		occupants.PUT("/:id", h.Update)
		occupants.DELETE("/:id", h.Delete)
	}
}

// Create registers a new occupant
func (h *OccupantHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req realestateapp.CreateOccupantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	occupant, err := h.occupantService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, occupant)
}

// List returns a paginated, filtered list of occupants
func (h *OccupantHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter realestateapp.OccupantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	occupants, total, err := h.occupantService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, occupants, total, filter.Page, filter.PageSize)
}

// GetByID returns a single occupant
func (h *OccupantHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	occupantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid occupant ID format")
		return
	}

	occupant, err := h.occupantService.GetByID(c.Request.Context(), tenantID, occupantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, occupant)
}

// Update updates an occupant's contact info or status
func (h *OccupantHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	occupantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid occupant ID format")
		return
	}

	var req realestateapp.UpdateOccupantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	occupant, err := h.occupantService.Update(c.Request.Context(), tenantID, occupantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, occupant)
}

// Delete removes an occupant
func (h *OccupantHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	occupantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid occupant ID format")
		return
	}

	if err := h.occupantService.Delete(c.Request.Context(), tenantID, occupantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
