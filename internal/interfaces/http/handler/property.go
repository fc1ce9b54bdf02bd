package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	realestateapp "github.com/poloatt/attadia-backend/internal/application/realestate"
)

// PropertyHandler handles property, room and inventory HTTP requests
type PropertyHandler struct {
	BaseHandler
	propertyService *realestateapp.PropertyService
	roomService     *realestateapp.RoomInventoryService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(
	propertyService *realestateapp.PropertyService,
	roomService *realestateapp.RoomInventoryService,
) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		roomService:     roomService,
	}
}

// RegisterRoutes registers property routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/:id", h.GetByID)
		properties.GET("/:id/status", h.Status)
		properties.PUT("/:id", h.Update)
		properties.DELETE("/:id", h.Delete)

		properties.POST("/:id/rooms", h.CreateRoom)
		properties.GET("/:id/rooms", h.ListRooms)
		properties.POST("/:id/inventory", h.CreateInventoryItem)
		properties.GET("/:id/inventory", h.ListInventory)
	}

	rooms := rg.Group("/rooms")
	{
		rooms.DELETE("/:id", h.DeleteRoom)
	}

	inventory := rg.Group("/inventory")
	{
		inventory.PUT("/:id", h.UpdateInventoryItem)
		inventory.DELETE("/:id", h.DeleteInventoryItem)
	}
}

// Create registers a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req realestateapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	property, err := h.propertyService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, property)
}

// List returns a paginated, filtered list of properties
func (h *PropertyHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter realestateapp.PropertyListFilter
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

	properties, total, err := h.propertyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, properties, total, filter.Page, filter.PageSize)
}

// GetByID returns a single property
func (h *PropertyHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// Status reports the occupancy status derived from active contracts
func (h *PropertyHandler) Status(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	status, err := h.propertyService.Status(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"status": status})
}

// Update updates a property
func (h *PropertyHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req realestateapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), tenantID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// Delete removes a property
func (h *PropertyHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), tenantID, propertyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateRoom adds a room to a property
func (h *PropertyHandler) CreateRoom(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.ValidationError(c, err)
		return
	}

	req := realestateapp.CreateRoomRequest{
		PropertyID: propertyID,
		Name:       body.Name,
		Type:       body.Type,
	}
	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, room)
}

// ListRooms returns the rooms of a property
func (h *PropertyHandler) ListRooms(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	rooms, err := h.roomService.ListRooms(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rooms)
}

// DeleteRoom removes a room
func (h *PropertyHandler) DeleteRoom(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	if err := h.roomService.DeleteRoom(c.Request.Context(), tenantID, roomID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateInventoryItem adds an inventory item to a property
func (h *PropertyHandler) CreateInventoryItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var body struct {
		RoomID    *uuid.UUID `json:"room_id"`
		Name      string     `json:"name" binding:"required"`
		Quantity  int        `json:"quantity" binding:"required,min=1"`
		Condition string     `json:"condition" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.ValidationError(c, err)
		return
	}

	req := realestateapp.CreateInventoryItemRequest{
		PropertyID: propertyID,
		RoomID:     body.RoomID,
		Name:       body.Name,
		Quantity:   body.Quantity,
		Condition:  body.Condition,
	}
	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	item, err := h.roomService.CreateInventoryItem(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// ListInventory returns the inventory items of a property
func (h *PropertyHandler) ListInventory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	items, err := h.roomService.ListInventory(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateInventoryItem updates quantity, condition or remark of an item
func (h *PropertyHandler) UpdateInventoryItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID format")
		return
	}

	var req realestateapp.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	item, err := h.roomService.UpdateInventoryItem(c.Request.Context(), tenantID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteInventoryItem removes an inventory item
func (h *PropertyHandler) DeleteInventoryItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID format")
		return
	}

	if err := h.roomService.DeleteInventoryItem(c.Request.Context(), tenantID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
