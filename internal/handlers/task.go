package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lynxview-api/internal/dto"
	apierrors "github.com/yukikurage/lynxview-api/internal/errors"
	"github.com/yukikurage/lynxview-api/internal/middleware"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/services"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

type TaskHandler struct {
	service *services.TaskService
	log     *slog.Logger
}

func NewTaskHandler(service *services.TaskService, log *slog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		log:     log,
	}
}

// ListTasks returns a page of tasks with project, assignee and creator embedded
// Can filter by project_id, assignee_id, status and priority
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params, ok := pagination(c, utils.TaskPageLimits)
	if !ok {
		return
	}

	q := newQueryFilters(c)
	filter := repository.TaskFilter{
		ProjectID:  q.Uint("project_id"),
		AssigneeID: q.Uint("assignee_id"),
	}
	if search := q.String("search"); search != nil {
		filter.Search = *search
	}
	if status := q.Enum("status", func(v string) bool { return models.TaskStatus(v).IsValid() }); status != nil {
		s := models.TaskStatus(*status)
		filter.Status = &s
	}
	if priority := q.Enum("priority", func(v string) bool { return models.TaskPriority(v).IsValid() }); priority != nil {
		p := models.TaskPriority(*priority)
		filter.Priority = &p
	}
	if !q.ok() {
		return
	}

	resp, err := h.service.Search(c.Request.Context(), filter, params.Skip, params.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateTask creates a new task owned by the calling user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	callerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.BadRequest(c, "X-User-ID header is required")
		return
	}

	type CreateTaskRequest struct {
		Title          string              `json:"title" binding:"required,min=1,max=200"`
		Description    *string             `json:"description"`
		Status         models.TaskStatus   `json:"status"`
		Priority       models.TaskPriority `json:"priority"`
		ProjectID      uint64              `json:"project_id" binding:"required"`
		AssigneeID     *uint64             `json:"assignee_id"`
		EstimatedHours *float64            `json:"estimated_hours"`
		ActualHours    *float64            `json:"actual_hours"`
		StartDate      *time.Time          `json:"start_date"`
		DueDate        *time.Time          `json:"due_date"`
		CompletedAt    *time.Time          `json:"completed_at"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), callerID, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		CompletedAt:    req.CompletedAt,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateTask applies a partial update; omitted fields are left unchanged
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title          utils.Optional[string]              `json:"title"`
		Description    utils.Optional[string]              `json:"description"`
		Status         utils.Optional[models.TaskStatus]   `json:"status"`
		Priority       utils.Optional[models.TaskPriority] `json:"priority"`
		ProjectID      utils.Optional[uint64]              `json:"project_id"`
		AssigneeID     utils.Optional[uint64]              `json:"assignee_id"`
		EstimatedHours utils.Optional[float64]             `json:"estimated_hours"`
		ActualHours    utils.Optional[float64]             `json:"actual_hours"`
		StartDate      utils.Optional[time.Time]           `json:"start_date"`
		DueDate        utils.Optional[time.Time]           `json:"due_date"`
		CompletedAt    utils.Optional[time.Time]           `json:"completed_at"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		CompletedAt:    req.CompletedAt,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// ListProjectTasks returns a page of tasks belonging to a project
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	h.listBy(c, h.service.ProjectTasks)
}

// ListUserTasks returns a page of tasks assigned to a user
func (h *TaskHandler) ListUserTasks(c *gin.Context) {
	h.listBy(c, h.service.UserTasks)
}

func (h *TaskHandler) listBy(c *gin.Context, list func(ctx context.Context, id uint64, skip, limit int) (*dto.TaskListResponse, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	params, ok := pagination(c, utils.TaskPageLimits)
	if !ok {
		return
	}

	resp, err := list(c.Request.Context(), id, params.Skip, params.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListOverdueTasks returns unfinished tasks past their due date
func (h *TaskHandler) ListOverdueTasks(c *gin.Context) {
	tasks, err := h.service.Overdue(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}
