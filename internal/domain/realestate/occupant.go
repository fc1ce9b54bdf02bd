package realestate

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// OccupantStatus is the lifecycle state of an occupant
type OccupantStatus string

const (
	OccupantStatusActive   OccupantStatus = "ACTIVO"
	OccupantStatusInactive OccupantStatus = "INACTIVO"
	OccupantStatusPending  OccupantStatus = "PENDIENTE"
)

// IsValid checks if the status is valid
func (s OccupantStatus) IsValid() bool {
	switch s {
	case OccupantStatusActive, OccupantStatusInactive, OccupantStatusPending:
		return true
	}
	return false
}

// Occupant is a person who rents (an inquilino). Occupants are linked to
// properties only through contracts; the aggregate itself holds no
// property references.
type Occupant struct {
	shared.TenantAggregateRoot
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Document  string         `json:"document,omitempty"` // DNI or passport number
	Status    OccupantStatus `json:"status"`
	Remark    string         `json:"remark,omitempty"`
}

// NewOccupant creates a new occupant in PENDIENTE state
func NewOccupant(tenantID uuid.UUID, firstName, lastName, email, phone, document string) (*Occupant, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Occupant first and last name cannot be empty")
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}

	o := &Occupant{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FirstName:           strings.TrimSpace(firstName),
		LastName:            strings.TrimSpace(lastName),
		Email:               email,
		Phone:               phone,
		Document:            document,
		Status:              OccupantStatusPending,
	}

	o.AddDomainEvent(NewOccupantRegisteredEvent(o))

	return o, nil
}

// FullName returns the occupant's display name
func (o *Occupant) FullName() string {
	return o.FirstName + " " + o.LastName
}

// Activate marks the occupant as actively renting
func (o *Occupant) Activate() {
	o.Status = OccupantStatusActive
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Deactivate marks the occupant as no longer renting
func (o *Occupant) Deactivate() {
	o.Status = OccupantStatusInactive
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// UpdateContact updates the occupant's contact details
func (o *Occupant) UpdateContact(email, phone string) error {
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}
	o.Email = email
	o.Phone = phone
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}
