package realestate

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// RoomType classifies a room within a property
type RoomType string

const (
	RoomTypeBedroom  RoomType = "DORMITORIO"
	RoomTypeBathroom RoomType = "BANO"
	RoomTypeKitchen  RoomType = "COCINA"
	RoomTypeLiving   RoomType = "LIVING"
	RoomTypeGarage   RoomType = "GARAGE"
	RoomTypeOther    RoomType = "OTRO"
)

// IsValid checks if the room type is valid
func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeBedroom, RoomTypeBathroom, RoomTypeKitchen,
		RoomTypeLiving, RoomTypeGarage, RoomTypeOther:
		return true
	}
	return false
}

// Room is a named space inside a property. Inventory items can be
// attached to a room or to the property directly.
type Room struct {
	shared.TenantAggregateRoot
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	Type       RoomType  `json:"type"`
	Remark     string    `json:"remark,omitempty"`
}

// NewRoom creates a new room attached to a property
func NewRoom(tenantID, propertyID uuid.UUID, name string, roomType RoomType) (*Room, error) {
	if propertyID == uuid.Nil {
		return nil, shared.ErrMissingReference
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_NAME", "Room name cannot be empty")
	}
	if !roomType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROOM_TYPE", "Room type is not valid")
	}

	return &Room{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		Name:                name,
		Type:                roomType,
	}, nil
}

// Rename updates the room name
func (r *Room) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ROOM_NAME", "Room name cannot be empty")
	}
	r.Name = name
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SetRemark sets the remark
func (r *Room) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
