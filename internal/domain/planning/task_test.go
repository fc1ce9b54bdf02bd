package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid task starts pending", func(t *testing.T) {
		task, err := NewTask(tenantID, nil, "Pintar living", "dos manos", nil)
		require.NoError(t, err)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Empty(t, task.Subtasks)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := NewTask(tenantID, nil, "", "", nil)
		assert.Error(t, err)
	})

	t.Run("nil project reference rejected", func(t *testing.T) {
		nilID := uuid.Nil
		_, err := NewTask(tenantID, &nilID, "x", "", nil)
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})
}

func TestTask_Subtasks(t *testing.T) {
	task, err := NewTask(uuid.New(), nil, "Mudanza", "", nil)
	require.NoError(t, err)

	require.NoError(t, task.AddSubtask("Embalar libros"))
	require.NoError(t, task.AddSubtask("Contratar flete"))
	assert.Error(t, task.AddSubtask(""))

	require.NoError(t, task.CompleteSubtask(0, time.Now()))
	assert.Equal(t, 1, task.Subtasks.CompletedCount())
	assert.Error(t, task.CompleteSubtask(0, time.Now()))
	assert.Error(t, task.CompleteSubtask(5, time.Now()))

	require.NoError(t, task.Complete())
	assert.Error(t, task.AddSubtask("tarde"))
}

func TestTask_Lifecycle(t *testing.T) {
	task, err := NewTask(uuid.New(), nil, "Revisar contrato", "", nil)
	require.NoError(t, err)

	require.NoError(t, task.Start())
	assert.Equal(t, TaskStatusInProgress, task.Status)
	assert.ErrorIs(t, task.Start(), shared.ErrInvalidState)

	require.NoError(t, task.Complete())
	assert.ErrorIs(t, task.Cancel(), shared.ErrInvalidState)
}

func TestProject_Lifecycle(t *testing.T) {
	tenantID := uuid.New()

	t.Run("date range validated", func(t *testing.T) {
		start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, -1, 0)
		_, err := NewProject(tenantID, "Refacción", "", &start, &end)
		assert.ErrorIs(t, err, shared.ErrInvalidRange)
	})

	t.Run("archive and reactivate", func(t *testing.T) {
		p, err := NewProject(tenantID, "Refacción", "", nil, nil)
		require.NoError(t, err)

		require.NoError(t, p.Archive())
		assert.Equal(t, ProjectStatusArchived, p.Status)
		assert.ErrorIs(t, p.Complete(), shared.ErrInvalidState)

		require.NoError(t, p.Reactivate())
		require.NoError(t, p.Complete())
		assert.Equal(t, ProjectStatusCompleted, p.Status)
	})
}

func TestRoutine(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	day := time.Date(2024, time.May, 10, 14, 30, 0, 0, time.UTC)

	r, err := NewRoutine(tenantID, userID, day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Zero(t, r.CompletionRate())

	require.NoError(t, r.MarkItem("ejercicio", "correr", true))
	require.NoError(t, r.MarkItem("ejercicio", "estirar", false))
	require.NoError(t, r.MarkItem("nutricion", "agua", true))
	assert.Error(t, r.MarkItem("", "x", true))

	assert.InDelta(t, 2.0/3.0, r.CompletionRate(), 1e-9)

	_, err = NewRoutine(tenantID, uuid.Nil, day)
	assert.ErrorIs(t, err, shared.ErrMissingReference)
}
