package planning

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDIENTE"
	TaskStatusInProgress TaskStatus = "EN_PROGRESO"
	TaskStatusCompleted  TaskStatus = "COMPLETADA"
	TaskStatusCancelled  TaskStatus = "CANCELADA"
)

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status allows no further work
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// Subtask is a checklist entry within a task, stored as JSONB
type Subtask struct {
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Subtasks is a slice of Subtask that implements GORM Scanner/Valuer for JSONB storage
type Subtasks []Subtask

// Value implements driver.Valuer interface for GORM to store as JSONB
func (s Subtasks) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (s *Subtasks) Scan(value interface{}) error {
	if value == nil {
		*s = Subtasks{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Subtasks: unsupported type")
	}

	return json.Unmarshal(bytes, s)
}

// CompletedCount returns how many subtasks are done
func (s Subtasks) CompletedCount() int {
	count := 0
	for _, st := range s {
		if st.Completed {
			count++
		}
	}
	return count
}

// Task is a unit of work, optionally attached to a project, with an
// embedded subtask checklist.
type Task struct {
	shared.TenantAggregateRoot
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	Title     string     `json:"title"`
	Details   string     `json:"details,omitempty"`
	Status    TaskStatus `json:"status"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Subtasks  Subtasks   `json:"subtasks"`
}

// NewTask creates a new pending task
func NewTask(tenantID uuid.UUID, projectID *uuid.UUID, title, details string, dueDate *time.Time) (*Task, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	if projectID != nil && *projectID == uuid.Nil {
		return nil, shared.ErrMissingReference
	}

	return &Task{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		Title:               title,
		Details:             details,
		Status:              TaskStatusPending,
		DueDate:             dueDate,
		Subtasks:            Subtasks{},
	}, nil
}

// AddSubtask appends a checklist entry
func (t *Task) AddSubtask(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Subtask title cannot be empty")
	}
	if t.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	t.Subtasks = append(t.Subtasks, Subtask{Title: title})
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// CompleteSubtask marks the subtask at the given zero-based index as done
func (t *Task) CompleteSubtask(index int, at time.Time) error {
	if index < 0 || index >= len(t.Subtasks) {
		return shared.NewDomainError("INVALID_SUBTASK", "Subtask index out of range")
	}
	if t.Subtasks[index].Completed {
		return shared.NewDomainError("ALREADY_COMPLETED", "Subtask is already completed")
	}
	t.Subtasks[index].Completed = true
	t.Subtasks[index].CompletedAt = &at
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Start moves a pending task to in progress
func (t *Task) Start() error {
	if t.Status != TaskStatusPending {
		return shared.ErrInvalidState
	}
	t.Status = TaskStatusInProgress
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Complete closes the task
func (t *Task) Complete() error {
	if t.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Cancel abandons the task
func (t *Task) Cancel() error {
	if t.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	t.Status = TaskStatusCancelled
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}
