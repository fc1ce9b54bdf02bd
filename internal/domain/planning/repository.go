package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// TaskFilter defines filtering options for task queries
type TaskFilter struct {
	shared.Filter
	ProjectID *uuid.UUID
	Status    *TaskStatus
	DueBefore *time.Time
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Project, error)
	Save(ctx context.Context, p *Project) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Task, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TaskFilter) ([]Task, error)
	Save(ctx context.Context, t *Task) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TaskFilter) (int64, error)
}

// RoutineRepository defines the interface for routine persistence
type RoutineRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Routine, error)

	// FindByUserAndDate returns the user's routine for a calendar day,
	// shared.ErrNotFound when none exists yet
	FindByUserAndDate(ctx context.Context, tenantID, userID uuid.UUID, date time.Time) (*Routine, error)

	// FindByUserRange returns the user's routines between two dates inclusive
	FindByUserRange(ctx context.Context, tenantID, userID uuid.UUID, from, to time.Time) ([]Routine, error)

	Save(ctx context.Context, r *Routine) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
