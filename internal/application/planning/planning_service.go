package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/planning"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// Service provides application-level project, task and routine operations
type Service struct {
	projectRepo planning.ProjectRepository
	taskRepo    planning.TaskRepository
	routineRepo planning.RoutineRepository
}

// NewService creates a new planning Service
func NewService(
	projectRepo planning.ProjectRepository,
	taskRepo planning.TaskRepository,
	routineRepo planning.RoutineRepository,
) *Service {
	return &Service{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		routineRepo: routineRepo,
	}
}

// ===================== Project Operations =====================

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Details   string     `json:"details,omitempty"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name      string     `json:"name" binding:"required"`
	Details   string     `json:"details"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedBy *uuid.UUID `json:"-"`
}

// CreateProject creates a new project
func (s *Service) CreateProject(ctx context.Context, tenantID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	p, err := planning.NewProject(tenantID, req.Name, req.Details, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		p.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// ListProjects lists the tenant's projects
func (s *Service) ListProjects(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProjectResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	projects, err := s.projectRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.projectRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *toProjectResponse(&projects[i])
	}
	return responses, total, nil
}

// CompleteProject marks a project as finished
func (s *Service) CompleteProject(ctx context.Context, tenantID, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.findProjectForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := p.Complete(); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// DeleteProject removes a project; its tasks lose the project reference
func (s *Service) DeleteProject(ctx context.Context, tenantID, id uuid.UUID) error {
	p, err := s.findProjectForWrite(ctx, tenantID, id)
	if err != nil {
		return err
	}

	tasks, err := s.taskRepo.FindAllForTenant(ctx, tenantID, planning.TaskFilter{
		Filter:    shared.Filter{Page: 1, PageSize: 10000},
		ProjectID: &p.ID,
	})
	if err != nil {
		return err
	}
	for i := range tasks {
		tasks[i].ProjectID = nil
		if err := s.taskRepo.Save(ctx, &tasks[i]); err != nil {
			return err
		}
	}

	return s.projectRepo.DeleteForTenant(ctx, tenantID, id)
}

// ===================== Task Operations =====================

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID        uuid.UUID         `json:"id"`
	ProjectID *uuid.UUID        `json:"project_id,omitempty"`
	Title     string            `json:"title"`
	Details   string            `json:"details,omitempty"`
	Status    string            `json:"status"`
	DueDate   *time.Time        `json:"due_date,omitempty"`
	Subtasks  planning.Subtasks `json:"subtasks"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	ProjectID *uuid.UUID `json:"project_id"`
	Title     string     `json:"title" binding:"required"`
	Details   string     `json:"details"`
	DueDate   *time.Time `json:"due_date"`
	Subtasks  []string   `json:"subtasks"`
	CreatedBy *uuid.UUID `json:"-"`
}

// TaskListFilter defines filtering options for task list queries
type TaskListFilter struct {
	ProjectID *uuid.UUID `form:"project_id"`
	Status    *string    `form:"status"`
	DueBefore *time.Time `form:"due_before"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// CreateTask creates a new task, optionally inside a project
func (s *Service) CreateTask(ctx context.Context, tenantID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	if req.ProjectID != nil {
		if _, err := s.findProject(ctx, tenantID, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	task, err := planning.NewTask(tenantID, req.ProjectID, req.Title, req.Details, req.DueDate)
	if err != nil {
		return nil, err
	}
	for _, title := range req.Subtasks {
		if err := task.AddSubtask(title); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		task.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// ListTasks retrieves tasks with filtering and pagination
func (s *Service) ListTasks(ctx context.Context, tenantID uuid.UUID, filter TaskListFilter) ([]TaskResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := planning.TaskFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "due_date",
			OrderDir: "asc",
		},
		ProjectID: filter.ProjectID,
		DueBefore: filter.DueBefore,
	}
	if filter.Status != nil {
		st := planning.TaskStatus(*filter.Status)
		domainFilter.Status = &st
	}

	tasks, err := s.taskRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.taskRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *toTaskResponse(&tasks[i])
	}
	return responses, total, nil
}

// StartTask moves a task to in progress
func (s *Service) StartTask(ctx context.Context, tenantID, id uuid.UUID) (*TaskResponse, error) {
	return s.taskTransition(ctx, tenantID, id, (*planning.Task).Start)
}

// CompleteTask closes a task
func (s *Service) CompleteTask(ctx context.Context, tenantID, id uuid.UUID) (*TaskResponse, error) {
	return s.taskTransition(ctx, tenantID, id, (*planning.Task).Complete)
}

// CancelTask abandons a task
func (s *Service) CancelTask(ctx context.Context, tenantID, id uuid.UUID) (*TaskResponse, error) {
	return s.taskTransition(ctx, tenantID, id, (*planning.Task).Cancel)
}

// CompleteSubtask checks off one subtask
func (s *Service) CompleteSubtask(ctx context.Context, tenantID, id uuid.UUID, index int) (*TaskResponse, error) {
	task, err := s.findTaskForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := task.CompleteSubtask(index, time.Now()); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// DeleteTask removes a task
func (s *Service) DeleteTask(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.findTaskForWrite(ctx, tenantID, id); err != nil {
		return err
	}
	return s.taskRepo.DeleteForTenant(ctx, tenantID, id)
}

// ===================== Routine Operations =====================

// RoutineResponse represents one day's routine in API responses
type RoutineResponse struct {
	ID             uuid.UUID             `json:"id"`
	UserID         uuid.UUID             `json:"user_id"`
	Date           time.Time             `json:"date"`
	Sections       planning.SectionItems `json:"sections"`
	CompletionRate float64               `json:"completion_rate"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// MarkHabitRequest records one habit item for a day
type MarkHabitRequest struct {
	Date    time.Time `json:"date" binding:"required"`
	Section string    `json:"section" binding:"required"`
	Item    string    `json:"item" binding:"required"`
	Done    bool      `json:"done"`
}

// MarkHabit upserts the user's routine for the day and records the item
func (s *Service) MarkHabit(ctx context.Context, tenantID, userID uuid.UUID, req MarkHabitRequest) (*RoutineResponse, error) {
	routine, err := s.routineRepo.FindByUserAndDate(ctx, tenantID, userID, req.Date)
	if err != nil && !shared.IsDomainError(err, "NOT_FOUND") {
		return nil, err
	}
	if routine == nil {
		routine, err = planning.NewRoutine(tenantID, userID, req.Date)
		if err != nil {
			return nil, err
		}
	}

	if err := routine.MarkItem(req.Section, req.Item, req.Done); err != nil {
		return nil, err
	}

	if err := s.routineRepo.Save(ctx, routine); err != nil {
		return nil, err
	}
	return toRoutineResponse(routine), nil
}

// GetRoutine returns the user's routine for a day
func (s *Service) GetRoutine(ctx context.Context, tenantID, userID uuid.UUID, date time.Time) (*RoutineResponse, error) {
	routine, err := s.routineRepo.FindByUserAndDate(ctx, tenantID, userID, date)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No routine recorded for this day")
	}
	return toRoutineResponse(routine), nil
}

// ListRoutines returns the user's routines in a date range
func (s *Service) ListRoutines(ctx context.Context, tenantID, userID uuid.UUID, from, to time.Time) ([]RoutineResponse, error) {
	routines, err := s.routineRepo.FindByUserRange(ctx, tenantID, userID, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]RoutineResponse, len(routines))
	for i := range routines {
		responses[i] = *toRoutineResponse(&routines[i])
	}
	return responses, nil
}

func (s *Service) taskTransition(ctx context.Context, tenantID, id uuid.UUID, apply func(*planning.Task) error) (*TaskResponse, error) {
	task, err := s.findTaskForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(task); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *Service) findProject(ctx context.Context, tenantID, id uuid.UUID) (*planning.Project, error) {
	p, err := s.projectRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Project not found")
	}
	return p, nil
}

func (s *Service) findTask(ctx context.Context, tenantID, id uuid.UUID) (*planning.Task, error) {
	t, err := s.taskRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Task not found")
	}
	return t, nil
}

// Mutations require ownership: non-admin users may only touch projects
// and tasks they created.

func (s *Service) findProjectForWrite(ctx context.Context, tenantID, id uuid.UUID) (*planning.Project, error) {
	p, err := s.findProject(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shared.CheckOwnership(ctx, &p.TenantAggregateRoot); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) findTaskForWrite(ctx context.Context, tenantID, id uuid.UUID) (*planning.Task, error) {
	t, err := s.findTask(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shared.CheckOwnership(ctx, &t.TenantAggregateRoot); err != nil {
		return nil, err
	}
	return t, nil
}

func toProjectResponse(p *planning.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Details:   p.Details,
		Status:    string(p.Status),
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toTaskResponse(t *planning.Task) *TaskResponse {
	return &TaskResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Details:   t.Details,
		Status:    string(t.Status),
		DueDate:   t.DueDate,
		Subtasks:  t.Subtasks,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toRoutineResponse(r *planning.Routine) *RoutineResponse {
	return &RoutineResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		Date:           r.Date,
		Sections:       r.Sections,
		CompletionRate: r.CompletionRate(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
