package realestate

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// ItemCondition describes the state of an inventory item
type ItemCondition string

const (
	ConditionNew     ItemCondition = "NUEVO"
	ConditionGood    ItemCondition = "BUENO"
	ConditionRegular ItemCondition = "REGULAR"
	ConditionBad     ItemCondition = "MALO"
)

// IsValid checks if the condition is valid
func (c ItemCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionRegular, ConditionBad:
		return true
	}
	return false
}

// InventoryItem is a counted object that belongs to a property, optionally
// scoped to one of its rooms.
type InventoryItem struct {
	shared.TenantAggregateRoot
	PropertyID uuid.UUID     `json:"property_id"`
	RoomID     *uuid.UUID    `json:"room_id,omitempty"`
	Name       string        `json:"name"`
	Quantity   int           `json:"quantity"`
	Condition  ItemCondition `json:"condition"`
	Remark     string        `json:"remark,omitempty"`
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(tenantID, propertyID uuid.UUID, roomID *uuid.UUID, name string, quantity int, condition ItemCondition) (*InventoryItem, error) {
	if propertyID == uuid.Nil {
		return nil, shared.ErrMissingReference
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if !condition.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONDITION", "Item condition is not valid")
	}
	if roomID != nil && *roomID == uuid.Nil {
		return nil, shared.ErrMissingReference
	}

	return &InventoryItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		RoomID:              roomID,
		Name:                name,
		Quantity:            quantity,
		Condition:           condition,
	}, nil
}

// AdjustQuantity sets a new quantity
func (i *InventoryItem) AdjustQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Reassess records a new condition for the item
func (i *InventoryItem) Reassess(condition ItemCondition) error {
	if !condition.IsValid() {
		return shared.NewDomainError("INVALID_CONDITION", "Item condition is not valid")
	}
	i.Condition = condition
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
