package realestate

import (
	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// PropertyListedEvent is raised when a new property is created
type PropertyListedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID    `json:"property_id"`
	Alias      string       `json:"alias"`
	Type       PropertyType `json:"type"`
	City       string       `json:"city"`
}

// EventType returns the event type name
func (e *PropertyListedEvent) EventType() string {
	return "PropertyListed"
}

// NewPropertyListedEvent creates a new PropertyListedEvent
func NewPropertyListedEvent(p *Property) *PropertyListedEvent {
	return &PropertyListedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PropertyListed", "Property", p.ID, p.TenantID),
		PropertyID:      p.ID,
		Alias:           p.Alias,
		Type:            p.Type,
		City:            p.Address.City,
	}
}

// OccupantRegisteredEvent is raised when a new occupant is registered
type OccupantRegisteredEvent struct {
	shared.BaseDomainEvent
	OccupantID uuid.UUID `json:"occupant_id"`
	FullName   string    `json:"full_name"`
}

// EventType returns the event type name
func (e *OccupantRegisteredEvent) EventType() string {
	return "OccupantRegistered"
}

// NewOccupantRegisteredEvent creates a new OccupantRegisteredEvent
func NewOccupantRegisteredEvent(o *Occupant) *OccupantRegisteredEvent {
	return &OccupantRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("OccupantRegistered", "Occupant", o.ID, o.TenantID),
		OccupantID:      o.ID,
		FullName:        o.FullName(),
	}
}
