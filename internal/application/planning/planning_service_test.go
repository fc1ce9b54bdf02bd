package planning

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poloatt/attadia-backend/internal/domain/planning"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// MockProjectRepository is a mock implementation of planning.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*planning.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]planning.Project, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planning.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *planning.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProjectRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTaskRepository is a mock implementation of planning.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*planning.Task, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter planning.TaskFilter) ([]planning.Task, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planning.Task), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, t *planning.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockTaskRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter planning.TaskFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoutineRepository is a mock implementation of planning.RoutineRepository
type MockRoutineRepository struct {
	mock.Mock
}

func (m *MockRoutineRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*planning.Routine, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Routine), args.Error(1)
}

func (m *MockRoutineRepository) FindByUserAndDate(ctx context.Context, tenantID, userID uuid.UUID, date time.Time) (*planning.Routine, error) {
	args := m.Called(ctx, tenantID, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Routine), args.Error(1)
}

func (m *MockRoutineRepository) FindByUserRange(ctx context.Context, tenantID, userID uuid.UUID, from, to time.Time) ([]planning.Routine, error) {
	args := m.Called(ctx, tenantID, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planning.Routine), args.Error(1)
}

func (m *MockRoutineRepository) Save(ctx context.Context, r *planning.Routine) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoutineRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func newTestService() (*Service, *MockProjectRepository, *MockTaskRepository, *MockRoutineRepository) {
	projectRepo := new(MockProjectRepository)
	taskRepo := new(MockTaskRepository)
	routineRepo := new(MockRoutineRepository)
	return NewService(projectRepo, taskRepo, routineRepo), projectRepo, taskRepo, routineRepo
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, projectRepo, _, _ := newTestService()

	projectRepo.On("Save", ctx, mock.AnythingOfType("*planning.Project")).Return(nil)

	resp, err := svc.CreateProject(ctx, tenantID, CreateProjectRequest{
		Name:    "Reforma cocina",
		Details: "Cambio de muebles y griferia",
	})

	require.NoError(t, err)
	assert.Equal(t, "Reforma cocina", resp.Name)
	assert.Equal(t, "ACTIVO", resp.Status)
	projectRepo.AssertExpectations(t)
}

func TestCreateProject_EmptyName(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	_, err := svc.CreateProject(ctx, uuid.New(), CreateProjectRequest{Name: ""})
	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err, "INVALID_NAME"))
}

func TestCompleteProject_NotFound(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	id := uuid.New()
	svc, projectRepo, _, _ := newTestService()

	projectRepo.On("FindByID", ctx, tenantID, id).Return(nil, nil)

	_, err := svc.CompleteProject(ctx, tenantID, id)
	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
}

func TestDeleteProject_DetachesTasks(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, projectRepo, taskRepo, _ := newTestService()

	project, err := planning.NewProject(tenantID, "Mudanza", "", nil, nil)
	require.NoError(t, err)

	task, err := planning.NewTask(tenantID, &project.ID, "Contratar flete", "", nil)
	require.NoError(t, err)

	projectRepo.On("FindByID", ctx, tenantID, project.ID).Return(project, nil)
	taskRepo.On("FindAllForTenant", ctx, tenantID, mock.AnythingOfType("planning.TaskFilter")).
		Return([]planning.Task{*task}, nil)
	taskRepo.On("Save", ctx, mock.MatchedBy(func(saved *planning.Task) bool {
		return saved.ProjectID == nil
	})).Return(nil)
	projectRepo.On("DeleteForTenant", ctx, tenantID, project.ID).Return(nil)

	require.NoError(t, svc.DeleteProject(ctx, tenantID, project.ID))
	projectRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
}

func TestCreateTask_UnknownProject(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	projectID := uuid.New()
	svc, projectRepo, _, _ := newTestService()

	projectRepo.On("FindByID", ctx, tenantID, projectID).Return(nil, nil)

	_, err := svc.CreateTask(ctx, tenantID, CreateTaskRequest{
		ProjectID: &projectID,
		Title:     "Pintar living",
	})
	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
}

func TestCreateTask_WithSubtasks(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, _, taskRepo, _ := newTestService()

	taskRepo.On("Save", ctx, mock.AnythingOfType("*planning.Task")).Return(nil)

	resp, err := svc.CreateTask(ctx, tenantID, CreateTaskRequest{
		Title:    "Pintar living",
		Subtasks: []string{"Comprar pintura", "Lijar paredes"},
	})

	require.NoError(t, err)
	assert.Equal(t, "PENDIENTE", resp.Status)
	require.Len(t, resp.Subtasks, 2)
	assert.Equal(t, "Comprar pintura", resp.Subtasks[0].Title)
	assert.False(t, resp.Subtasks[0].Completed)
}

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, _, taskRepo, _ := newTestService()

	task, err := planning.NewTask(tenantID, nil, "Revisar contrato", "", nil)
	require.NoError(t, err)

	taskRepo.On("FindByID", ctx, tenantID, task.ID).Return(task, nil)
	taskRepo.On("Save", ctx, task).Return(nil)

	resp, err := svc.StartTask(ctx, tenantID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "EN_PROGRESO", resp.Status)

	resp, err = svc.CompleteTask(ctx, tenantID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETADA", resp.Status)

	// A completed task cannot be started again
	_, err = svc.StartTask(ctx, tenantID, task.ID)
	require.Error(t, err)
}

func TestCompleteSubtask(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, _, taskRepo, _ := newTestService()

	task, err := planning.NewTask(tenantID, nil, "Inventario", "", nil)
	require.NoError(t, err)
	require.NoError(t, task.AddSubtask("Contar muebles"))

	taskRepo.On("FindByID", ctx, tenantID, task.ID).Return(task, nil)
	taskRepo.On("Save", ctx, task).Return(nil)

	resp, err := svc.CompleteSubtask(ctx, tenantID, task.ID, 0)
	require.NoError(t, err)
	assert.True(t, resp.Subtasks[0].Completed)

	_, err = svc.CompleteSubtask(ctx, tenantID, task.ID, 5)
	require.Error(t, err)
}

func TestMarkHabit_CreatesRoutine(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, _, _, routineRepo := newTestService()

	routineRepo.On("FindByUserAndDate", ctx, tenantID, userID, day).
		Return(nil, shared.NewDomainError("NOT_FOUND", "No routine recorded for this day"))
	routineRepo.On("Save", ctx, mock.AnythingOfType("*planning.Routine")).Return(nil)

	resp, err := svc.MarkHabit(ctx, tenantID, userID, MarkHabitRequest{
		Date:    day,
		Section: "bodyCare",
		Item:    "gym",
		Done:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, resp.UserID)
	assert.True(t, resp.Sections["bodyCare"]["gym"])
	assert.Equal(t, 1.0, resp.CompletionRate)
	routineRepo.AssertExpectations(t)
}

func TestMarkHabit_UpdatesExistingRoutine(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, _, _, routineRepo := newTestService()

	routine, err := planning.NewRoutine(tenantID, userID, day)
	require.NoError(t, err)
	require.NoError(t, routine.MarkItem("bodyCare", "gym", true))

	routineRepo.On("FindByUserAndDate", ctx, tenantID, userID, day).Return(routine, nil)
	routineRepo.On("Save", ctx, routine).Return(nil)

	resp, err := svc.MarkHabit(ctx, tenantID, userID, MarkHabitRequest{
		Date:    day,
		Section: "nutricion",
		Item:    "desayuno",
		Done:    false,
	})

	require.NoError(t, err)
	assert.True(t, resp.Sections["bodyCare"]["gym"])
	assert.False(t, resp.Sections["nutricion"]["desayuno"])
	assert.Equal(t, 0.5, resp.CompletionRate)
}

func TestGetRoutine_NotFound(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, _, _, routineRepo := newTestService()

	routineRepo.On("FindByUserAndDate", ctx, tenantID, userID, day).Return(nil, nil)

	_, err := svc.GetRoutine(ctx, tenantID, userID, day)
	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
}

func TestMutationsRequireOwnership(t *testing.T) {
	tenantID := uuid.New()
	owner := uuid.New()

	t.Run("another user cannot complete someone else's project", func(t *testing.T) {
		svc, projectRepo, _, _ := newTestService()

		project, err := planning.NewProject(tenantID, "Pintura exterior", "", nil, nil)
		require.NoError(t, err)
		project.SetCreatedBy(owner)

		ctx := shared.WithActor(context.Background(), shared.Actor{UserID: uuid.New(), Role: "USER"})
		projectRepo.On("FindByID", ctx, tenantID, project.ID).Return(project, nil)

		_, err = svc.CompleteProject(ctx, tenantID, project.ID)
		require.ErrorIs(t, err, shared.ErrForbidden)
		projectRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("the creator completes their own project", func(t *testing.T) {
		svc, projectRepo, _, _ := newTestService()

		project, err := planning.NewProject(tenantID, "Pintura exterior", "", nil, nil)
		require.NoError(t, err)
		project.SetCreatedBy(owner)

		ctx := shared.WithActor(context.Background(), shared.Actor{UserID: owner, Role: "USER"})
		projectRepo.On("FindByID", ctx, tenantID, project.ID).Return(project, nil)
		projectRepo.On("Save", ctx, project).Return(nil)

		resp, err := svc.CompleteProject(ctx, tenantID, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETADO", resp.Status)
		projectRepo.AssertExpectations(t)
	})

	t.Run("an admin deletes any task", func(t *testing.T) {
		svc, _, taskRepo, _ := newTestService()

		task, err := planning.NewTask(tenantID, nil, "Cambiar cerradura", "", nil)
		require.NoError(t, err)
		task.SetCreatedBy(owner)

		ctx := shared.WithActor(context.Background(), shared.Actor{UserID: uuid.New(), Role: "ADMIN"})
		taskRepo.On("FindByID", ctx, tenantID, task.ID).Return(task, nil)
		taskRepo.On("DeleteForTenant", ctx, tenantID, task.ID).Return(nil)

		require.NoError(t, svc.DeleteTask(ctx, tenantID, task.ID))
		taskRepo.AssertExpectations(t)
	})
}
