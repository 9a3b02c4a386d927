package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskResponsibleRequest struct {
	TaskID uint64 `json:"taskId" binding:"required"`
	UserID uint64 `json:"userId" binding:"required"`
}

type taskIDRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

// Create creates a task under a project
func (h *TaskHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name          string `json:"name" binding:"required"`
		Description   string `json:"description"`
		ResponsibleID uint64 `json:"responsibleId" binding:"required"`
		Deadline      string `json:"deadline" binding:"required"`
		ProjectID     uint64 `json:"projectId" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	_, err := h.tasks.Create(c.Request.Context(), services.CreateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		ResponsibleID: req.ResponsibleID,
		Deadline:      req.Deadline,
		ProjectID:     req.ProjectID,
	})
	if err != nil {
		respondTaskError(c, err, "ResponsibleId or ProjectId Not found")
		return
	}

	apierrors.OK(c, "Task created", nil)
}

// AddUser makes a user responsible for a task
func (h *TaskHandler) AddUser(c *gin.Context) {
	var req taskResponsibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.tasks.AddResponsible(c.Request.Context(), req.TaskID, req.UserID); err != nil {
		respondTaskError(c, err, "User not found")
		return
	}

	apierrors.OK(c, "User added to task", nil)
}

// DeleteUser removes a responsible user from a task
func (h *TaskHandler) DeleteUser(c *gin.Context) {
	var req taskResponsibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.tasks.RemoveResponsible(c.Request.Context(), req.TaskID, req.UserID); err != nil {
		respondTaskError(c, err, "UserId or taskId not found")
		return
	}

	apierrors.OK(c, "User deleted from task", nil)
}

// UpdateStatus flips the done flag of a task
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req taskIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	status, err := h.tasks.ToggleStatus(c.Request.Context(), req.ID)
	if err != nil {
		respondTaskError(c, err, "Task not found")
		return
	}

	apierrors.OK(c, "Task status updated", gin.H{"taskStatus": status})
}

// UpdateDeadline reschedules a task
func (h *TaskHandler) UpdateDeadline(c *gin.Context) {
	type UpdateDeadlineRequest struct {
		ID       uint64 `json:"id" binding:"required"`
		Deadline string `json:"deadline" binding:"required"`
	}

	var req UpdateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.tasks.UpdateDeadline(c.Request.Context(), req.ID, req.Deadline); err != nil {
		respondTaskError(c, err, "Task not found")
		return
	}

	apierrors.OK(c, "Task deadline updated", nil)
}

// UpdateProject moves a task to another project
func (h *TaskHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		ID           uint64 `json:"id" binding:"required"`
		NewProjectID uint64 `json:"newProjectId" binding:"required"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.tasks.UpdateProject(c.Request.Context(), req.ID, req.NewProjectID); err != nil {
		respondTaskError(c, err, "TaskId or newProjectId not found")
		return
	}

	apierrors.OK(c, "Task project updated", nil)
}

// Delete archives a task
func (h *TaskHandler) Delete(c *gin.Context) {
	var req taskIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.tasks.Archive(c.Request.Context(), req.ID); err != nil {
		respondTaskError(c, err, "TaskId not found")
		return
	}

	apierrors.OK(c, "Task deleted", nil)
}

func respondTaskError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, services.ErrInvalidDeadline):
		apierrors.BadRequest(c, "Invalid deadline")
	case errors.Is(err, services.ErrInvalidTaskData):
		apierrors.BadRequest(c, "Invalid request data")
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskReferenceNotFound),
		errors.Is(err, services.ErrTaskOrUserNotFound),
		errors.Is(err, services.ErrTaskOrProjectNotFound):
		apierrors.NotFound(c, notFound)
	default:
		respondUnexpected(c, err)
	}
}
