package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/api/metrics"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	TaskName    string    `json:"task_name"   validate:"required"`
	Description string    `json:"description"`
	LimitDate   time.Time `json:"limit_date"  validate:"required"`
	IsCompleted bool      `json:"is_completed"`
	AssignedTo  string    `json:"assigned_to" validate:"required"`
}

type updateTaskRequest struct {
	TaskName    *string    `json:"task_name"`
	Description *string    `json:"description"`
	LimitDate   *time.Time `json:"limit_date"`
	IsCompleted *bool      `json:"is_completed"`
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), actor, ports.CreateTaskInput{
		TaskName:    req.TaskName,
		Description: req.Description,
		LimitDate:   req.LimitDate,
		IsCompleted: req.IsCompleted,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /api/tasks. Admins see everything, Managers their
// department's tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      403  {object}  map[string]string
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetByID handles GET /api/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.service.GetByID(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// ListByUser handles GET /api/tasks/user/:username.
//
// @Summary      List tasks assigned to a user
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Assignee username"
// @Success      200       {array}   domain.Task
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/tasks/user/{username} [get]
func (h *TaskHandler) ListByUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListByAssignee(c.Request().Context(), actor, c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListDueNextWeek handles GET /api/tasks/due-next-week.
//
// @Summary      List tasks due within the next seven days
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      403  {object}  map[string]string
// @Router       /api/tasks/due-next-week [get]
func (h *TaskHandler) ListDueNextWeek(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListDueNextWeek(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Update handles PUT /api/tasks/:id. Employees may only toggle completion on
// their own tasks.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateTaskInput{
		TaskName:    req.TaskName,
		Description: req.Description,
		LimitDate:   req.LimitDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
