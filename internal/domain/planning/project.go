package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVO"
	ProjectStatusArchived  ProjectStatus = "ARCHIVADO"
	ProjectStatusCompleted ProjectStatus = "COMPLETADO"
)

// Project groups tasks under a common goal, optionally bounded in time
type Project struct {
	shared.TenantAggregateRoot
	Name      string        `json:"name"`
	Details   string        `json:"details,omitempty"`
	Status    ProjectStatus `json:"status"`
	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
}

// NewProject creates a new active project
func NewProject(tenantID uuid.UUID, name, details string, startDate, endDate *time.Time) (*Project, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if startDate != nil && endDate != nil && !endDate.After(*startDate) {
		return nil, shared.ErrInvalidRange
	}

	return &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Details:             details,
		Status:              ProjectStatusActive,
		StartDate:           startDate,
		EndDate:             endDate,
	}, nil
}

// Rename updates the project name
func (p *Project) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Complete marks the project as finished
func (p *Project) Complete() error {
	if p.Status != ProjectStatusActive {
		return shared.ErrInvalidState
	}
	p.Status = ProjectStatusCompleted
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Archive hides the project from active listings
func (p *Project) Archive() error {
	if p.Status == ProjectStatusArchived {
		return shared.ErrInvalidState
	}
	p.Status = ProjectStatusArchived
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Reactivate restores an archived project
func (p *Project) Reactivate() error {
	if p.Status != ProjectStatusArchived {
		return shared.ErrInvalidState
	}
	p.Status = ProjectStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
