package realestate

import (
	"context"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// PropertyFilter defines filtering options for property queries
type PropertyFilter struct {
	shared.Filter
	Type *PropertyType
	City *string
}

// OccupantFilter defines filtering options for occupant queries
type OccupantFilter struct {
	shared.Filter
	Status *OccupantStatus
}

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by ID for a specific tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)

	// FindAllForTenant finds all properties for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PropertyFilter) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, p *Property) error

	// DeleteForTenant soft deletes a property for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts properties for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter PropertyFilter) (int64, error)
}

// RoomRepository defines the interface for room persistence
type RoomRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Room, error)
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]Room, error)
	Save(ctx context.Context, r *Room) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// InventoryRepository defines the interface for inventory persistence
type InventoryRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]InventoryItem, error)
	FindByRoom(ctx context.Context, tenantID, roomID uuid.UUID) ([]InventoryItem, error)
	Save(ctx context.Context, i *InventoryItem) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// OccupantRepository defines the interface for occupant persistence
type OccupantRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Occupant, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Occupant, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter OccupantFilter) ([]Occupant, error)
	Save(ctx context.Context, o *Occupant) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter OccupantFilter) (int64, error)
}
