package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	planningapp "github.com/poloatt/attadia-backend/internal/application/planning"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/interfaces/http/dto"
)

// PlanningHandler exposes project, task and routine endpoints
type PlanningHandler struct {
	BaseHandler
	planningService *planningapp.Service
}

// NewPlanningHandler creates a new planning handler
func NewPlanningHandler(planningService *planningapp.Service) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

// RegisterRoutes registers planning routes
func (h *PlanningHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.POST("/:id/complete", h.CompleteProject)
		projects.DELETE("/:id", h.DeleteProject)
	}

	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.POST("/:id/start", h.StartTask)
		tasks.POST("/:id/complete", h.CompleteTask)
		tasks.POST("/:id/cancel", h.CancelTask)
		tasks.POST("/:id/subtasks/:index/complete", h.CompleteSubtask)
		tasks.DELETE("/:id", h.DeleteTask)
	}

	routines := rg.Group("/routines")
	{
		routines.POST("/habits", h.MarkHabit)
		routines.GET("", h.ListRoutines)
		routines.GET("/today", h.GetRoutineByDate)
	}
}

// CreateProject handles POST /projects
func (h *PlanningHandler) CreateProject(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req planningapp.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.planningService.CreateProject(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListProjects handles GET /projects
func (h *PlanningHandler) ListProjects(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.ValidationError(c, err)
		return
	}
	listReq.Normalize()

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
		Filters:  map[string]interface{}{},
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	projects, total, err := h.planningService.ListProjects(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, projects, total, filter.Page, filter.PageSize)
}

// CompleteProject handles POST /projects/:id/complete
func (h *PlanningHandler) CompleteProject(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	resp, err := h.planningService.CompleteProject(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteProject handles DELETE /projects/:id
func (h *PlanningHandler) DeleteProject(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.planningService.DeleteProject(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateTask handles POST /tasks
func (h *PlanningHandler) CreateTask(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req planningapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.planningService.CreateTask(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListTasks handles GET /tasks
func (h *PlanningHandler) ListTasks(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var filter planningapp.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	tasks, total, err := h.planningService.ListTasks(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, tasks, total, filter.Page, filter.PageSize)
}

// taskTransition applies a status transition to the task identified by the
// :id path parameter
func (h *PlanningHandler) taskTransition(c *gin.Context, apply func(ctx context.Context, tenantID, id uuid.UUID) (*planningapp.TaskResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	resp, err := apply(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// StartTask handles POST /tasks/:id/start
func (h *PlanningHandler) StartTask(c *gin.Context) {
	h.taskTransition(c, h.planningService.StartTask)
}

// CompleteTask handles POST /tasks/:id/complete
func (h *PlanningHandler) CompleteTask(c *gin.Context) {
	h.taskTransition(c, h.planningService.CompleteTask)
}

// CancelTask handles POST /tasks/:id/cancel
func (h *PlanningHandler) CancelTask(c *gin.Context) {
	h.taskTransition(c, h.planningService.CancelTask)
}

// CompleteSubtask handles POST /tasks/:id/subtasks/:index/complete
func (h *PlanningHandler) CompleteSubtask(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		h.BadRequest(c, "Invalid subtask index")
		return
	}

	resp, err := h.planningService.CompleteSubtask(c.Request.Context(), tenantID, id, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteTask handles DELETE /tasks/:id
func (h *PlanningHandler) DeleteTask(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.planningService.DeleteTask(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkHabit handles POST /routines/habits
func (h *PlanningHandler) MarkHabit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing user context")
		return
	}

	var req planningapp.MarkHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.planningService.MarkHabit(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetRoutineByDate handles GET /routines/today with an optional date query
func (h *PlanningHandler) GetRoutineByDate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing user context")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	resp, err := h.planningService.GetRoutine(c.Request.Context(), tenantID, userID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListRoutines handles GET /routines over a date range
func (h *PlanningHandler) ListRoutines(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing user context")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	routines, err := h.planningService.ListRoutines(c.Request.Context(), tenantID, userID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, routines)
}
