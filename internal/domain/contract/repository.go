package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// Filter defines filtering options for contract queries
type Filter struct {
	shared.Filter
	PropertyID    *uuid.UUID // Filter by property
	TenantRef     *uuid.UUID // Filter by inquilino
	AccountID     *uuid.UUID // Filter by settlement account
	Status        *Status    // Filter by effective status (override or natural)
	IsMaintenance *bool      // Filter by maintenance flag
	ActiveOn      *time.Time // Contracts whose period contains this date
	StartFrom     *time.Time // Filter by start date range
	StartTo       *time.Time
}

// Repository defines the interface for contract persistence
type Repository interface {
	// FindByID finds a contract by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)

	// FindByIDForTenant finds a contract by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contract, error)

	// FindByNumber finds a contract by contract number for a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, contractNumber string) (*Contract, error)

	// FindAllForTenant finds all contracts for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Contract, error)

	// FindByProperty finds contracts attached to a property
	FindByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]Contract, error)

	// FindActiveOn finds contracts whose period contains the given date and
	// that carry no terminal override
	FindActiveOn(ctx context.Context, tenantID uuid.UUID, on time.Time) ([]Contract, error)

	// Save creates or updates a contract
	Save(ctx context.Context, c *Contract) error

	// SaveWithLock saves with optimistic locking (version check); returns
	// shared.ErrConcurrencyConflict when the stored version moved on
	SaveWithLock(ctx context.Context, c *Contract) error

	// DeleteForTenant soft deletes a contract for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts contracts for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)

	// GenerateContractNumber produces the next sequential contract number
	GenerateContractNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
