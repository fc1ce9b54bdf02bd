package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/planning"
)

// ProjectModel is the persistence model for the Project aggregate root.
type ProjectModel struct {
	TenantAggregateModel
	Name      string                 `gorm:"type:varchar(200);not null"`
	Details   string                 `gorm:"type:text"`
	Status    planning.ProjectStatus `gorm:"type:varchar(20);not null;index"`
	StartDate *time.Time
	EndDate   *time.Time
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity.
func (m *ProjectModel) ToDomain() *planning.Project {
	p := &planning.Project{
		Name:      m.Name,
		Details:   m.Details,
		Status:    m.Status,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *planning.Project) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Details = p.Details
	m.Status = p.Status
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
}

// ProjectModelFromDomain creates a new persistence model from a domain Project.
func ProjectModelFromDomain(p *planning.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// TaskModel is the persistence model for the Task aggregate root.
// Subtasks are stored inline as JSONB since they have no identity of
// their own.
type TaskModel struct {
	TenantAggregateModel
	ProjectID *uuid.UUID          `gorm:"type:uuid;index"`
	Title     string              `gorm:"type:varchar(200);not null"`
	Details   string              `gorm:"type:text"`
	Status    planning.TaskStatus `gorm:"type:varchar(20);not null;index"`
	DueDate   *time.Time          `gorm:"index"`
	Subtasks  planning.Subtasks   `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task entity.
func (m *TaskModel) ToDomain() *planning.Task {
	t := &planning.Task{
		ProjectID: m.ProjectID,
		Title:     m.Title,
		Details:   m.Details,
		Status:    m.Status,
		DueDate:   m.DueDate,
		Subtasks:  m.Subtasks,
	}
	m.PopulateTenantAggregateRoot(&t.TenantAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Task entity.
func (m *TaskModel) FromDomain(t *planning.Task) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.ProjectID = t.ProjectID
	m.Title = t.Title
	m.Details = t.Details
	m.Status = t.Status
	m.DueDate = t.DueDate
	m.Subtasks = t.Subtasks
}

// TaskModelFromDomain creates a new persistence model from a domain Task.
func TaskModelFromDomain(t *planning.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}

// RoutineModel is the persistence model for the Routine aggregate root.
// One row per user per calendar day.
type RoutineModel struct {
	TenantAggregateModel
	UserID   uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_routine_user_date,priority:1"`
	Date     time.Time             `gorm:"type:date;not null;uniqueIndex:idx_routine_user_date,priority:2"`
	Sections planning.SectionItems `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (RoutineModel) TableName() string {
	return "routines"
}

// ToDomain converts the persistence model to a domain Routine entity.
func (m *RoutineModel) ToDomain() *planning.Routine {
	r := &planning.Routine{
		UserID:   m.UserID,
		Date:     m.Date,
		Sections: m.Sections,
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Routine entity.
func (m *RoutineModel) FromDomain(r *planning.Routine) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.UserID = r.UserID
	m.Date = r.Date
	m.Sections = r.Sections
}

// RoutineModelFromDomain creates a new persistence model from a domain Routine.
func RoutineModelFromDomain(r *planning.Routine) *RoutineModel {
	m := &RoutineModel{}
	m.FromDomain(r)
	return m
}
