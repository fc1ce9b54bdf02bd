package realestate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// RoomInventoryService provides room and inventory operations
type RoomInventoryService struct {
	propertyRepo  realestate.PropertyRepository
	roomRepo      realestate.RoomRepository
	inventoryRepo realestate.InventoryRepository
}

// NewRoomInventoryService creates a new RoomInventoryService
func NewRoomInventoryService(
	propertyRepo realestate.PropertyRepository,
	roomRepo realestate.RoomRepository,
	inventoryRepo realestate.InventoryRepository,
) *RoomInventoryService {
	return &RoomInventoryService{
		propertyRepo:  propertyRepo,
		roomRepo:      roomRepo,
		inventoryRepo: inventoryRepo,
	}
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Remark     string    `json:"remark,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	PropertyID uuid.UUID  `json:"property_id" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	Type       string     `json:"type" binding:"required"`
	CreatedBy  *uuid.UUID `json:"-"`
}

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	RoomID     *uuid.UUID `json:"room_id,omitempty"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	Condition  string     `json:"condition"`
	Remark     string     `json:"remark,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateInventoryItemRequest represents a request to create an inventory item
type CreateInventoryItemRequest struct {
	PropertyID uuid.UUID  `json:"property_id" binding:"required"`
	RoomID     *uuid.UUID `json:"room_id"`
	Name       string     `json:"name" binding:"required"`
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	Condition  string     `json:"condition" binding:"required"`
	CreatedBy  *uuid.UUID `json:"-"`
}

// UpdateInventoryItemRequest represents a request to update an inventory item
type UpdateInventoryItemRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Condition string `json:"condition" binding:"required"`
	Remark    string `json:"remark"`
}

// CreateRoom creates a room in an existing property
func (s *RoomInventoryService) CreateRoom(ctx context.Context, tenantID uuid.UUID, req CreateRoomRequest) (*RoomResponse, error) {
	if err := s.checkProperty(ctx, tenantID, req.PropertyID); err != nil {
		return nil, err
	}

	room, err := realestate.NewRoom(tenantID, req.PropertyID, req.Name, realestate.RoomType(req.Type))
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		room.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// ListRooms lists a property's rooms
func (s *RoomInventoryService) ListRooms(ctx context.Context, tenantID, propertyID uuid.UUID) ([]RoomResponse, error) {
	rooms, err := s.roomRepo.FindByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	responses := make([]RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = *toRoomResponse(&rooms[i])
	}
	return responses, nil
}

// DeleteRoom removes a room and detaches its inventory back to the property
func (s *RoomInventoryService) DeleteRoom(ctx context.Context, tenantID, id uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if room == nil {
		return shared.NewDomainError("NOT_FOUND", "Room not found")
	}
	if err := shared.CheckOwnership(ctx, &room.TenantAggregateRoot); err != nil {
		return err
	}

	items, err := s.inventoryRepo.FindByRoom(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].RoomID = nil
		if err := s.inventoryRepo.Save(ctx, &items[i]); err != nil {
			return err
		}
	}

	return s.roomRepo.DeleteForTenant(ctx, tenantID, id)
}

// CreateInventoryItem creates an inventory item on a property or room
func (s *RoomInventoryService) CreateInventoryItem(ctx context.Context, tenantID uuid.UUID, req CreateInventoryItemRequest) (*InventoryItemResponse, error) {
	if err := s.checkProperty(ctx, tenantID, req.PropertyID); err != nil {
		return nil, err
	}
	if req.RoomID != nil {
		room, err := s.roomRepo.FindByID(ctx, tenantID, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if room == nil || room.PropertyID != req.PropertyID {
			return nil, shared.NewDomainError("NOT_FOUND", "Room not found in this property")
		}
	}

	item, err := realestate.NewInventoryItem(tenantID, req.PropertyID, req.RoomID, req.Name, req.Quantity, realestate.ItemCondition(req.Condition))
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		item.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// ListInventory lists a property's inventory items
func (s *RoomInventoryService) ListInventory(ctx context.Context, tenantID, propertyID uuid.UUID) ([]InventoryItemResponse, error) {
	items, err := s.inventoryRepo.FindByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = *toInventoryItemResponse(&items[i])
	}
	return responses, nil
}

// UpdateInventoryItem updates quantity, condition and remark
func (s *RoomInventoryService) UpdateInventoryItem(ctx context.Context, tenantID, id uuid.UUID, req UpdateInventoryItemRequest) (*InventoryItemResponse, error) {
	item, err := s.inventoryRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Inventory item not found")
	}
	if err := shared.CheckOwnership(ctx, &item.TenantAggregateRoot); err != nil {
		return nil, err
	}

	if err := item.AdjustQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := item.Reassess(realestate.ItemCondition(req.Condition)); err != nil {
		return nil, err
	}
	item.Remark = req.Remark

	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// DeleteInventoryItem removes an inventory item
func (s *RoomInventoryService) DeleteInventoryItem(ctx context.Context, tenantID, id uuid.UUID) error {
	item, err := s.inventoryRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return shared.NewDomainError("NOT_FOUND", "Inventory item not found")
	}
	if err := shared.CheckOwnership(ctx, &item.TenantAggregateRoot); err != nil {
		return err
	}
	return s.inventoryRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *RoomInventoryService) checkProperty(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	p, err := s.propertyRepo.FindByID(ctx, tenantID, propertyID)
	if err != nil {
		return err
	}
	if p == nil {
		return shared.NewDomainError("NOT_FOUND", "Property not found")
	}
	return nil
}

func toRoomResponse(r *realestate.Room) *RoomResponse {
	return &RoomResponse{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		Name:       r.Name,
		Type:       string(r.Type),
		Remark:     r.Remark,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toInventoryItemResponse(i *realestate.InventoryItem) *InventoryItemResponse {
	return &InventoryItemResponse{
		ID:         i.ID,
		PropertyID: i.PropertyID,
		RoomID:     i.RoomID,
		Name:       i.Name,
		Quantity:   i.Quantity,
		Condition:  string(i.Condition),
		Remark:     i.Remark,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
