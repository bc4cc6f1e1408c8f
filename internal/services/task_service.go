package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

var (
	ErrInvalidTaskStatus   = validationError("status must be one of pending, in_progress, review, completed, cancelled")
	ErrInvalidTaskPriority = validationError("priority must be one of low, medium, high, urgent")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    *string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	ProjectID      uint64
	AssigneeID     *uint64
	EstimatedHours *float64
	ActualHours    *float64
	StartDate      *time.Time
	DueDate        *time.Time
	CompletedAt    *time.Time
}

// UpdateTaskInput represents a partial update of a task
type UpdateTaskInput struct {
	Title          utils.Optional[string]
	Description    utils.Optional[string]
	Status         utils.Optional[models.TaskStatus]
	Priority       utils.Optional[models.TaskPriority]
	ProjectID      utils.Optional[uint64]
	AssigneeID     utils.Optional[uint64]
	EstimatedHours utils.Optional[float64]
	ActualHours    utils.Optional[float64]
	StartDate      utils.Optional[time.Time]
	DueDate        utils.Optional[time.Time]
	CompletedAt    utils.Optional[time.Time]
}

func (in CreateTaskInput) validate() error {
	if err := checkLength("title", in.Title, 1, 200); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.IsValid() {
		return ErrInvalidTaskStatus
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		return ErrInvalidTaskPriority
	}
	return errors.Join(
		checkNonNegative("estimated_hours", in.EstimatedHours),
		checkNonNegative("actual_hours", in.ActualHours),
	)
}

func (in UpdateTaskInput) validate() error {
	if err := errors.Join(
		notNull(in.Title, "title"),
		notNull(in.Status, "status"),
		notNull(in.Priority, "priority"),
		notNull(in.ProjectID, "project_id"),
	); err != nil {
		return err
	}
	if in.Title.Set {
		if err := checkLength("title", *in.Title.Value, 1, 200); err != nil {
			return err
		}
	}
	if in.Status.Set && !in.Status.Value.IsValid() {
		return ErrInvalidTaskStatus
	}
	if in.Priority.Set && !in.Priority.Value.IsValid() {
		return ErrInvalidTaskPriority
	}
	return errors.Join(
		checkNonNegative("estimated_hours", in.EstimatedHours.Value),
		checkNonNegative("actual_hours", in.ActualHours.Value),
	)
}

// Search returns a page of tasks matching filter
func (s *TaskService) Search(ctx context.Context, filter repository.TaskFilter, skip, limit int) (*dto.TaskListResponse, error) {
	tasks, total, err := s.taskRepo.Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}

	return &dto.TaskListResponse{
		Total: total,
		Tasks: dto.ToTaskResponses(tasks),
	}, nil
}

// GetByID returns a task with its project, assignee and creator summaries
func (s *TaskService) GetByID(ctx context.Context, id uint64) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrTaskNotFound, "task")
	}

	resp := dto.ToTaskResponse(*task)
	return &resp, nil
}

// Create creates a task on behalf of callerID, who is recorded as its creator.
// The project, the assignee if given, and the caller must all exist.
func (s *TaskService) Create(ctx context.Context, callerID uint64, input CreateTaskInput) (resp *dto.TaskResponse, err error) {
	defer func() { observe("task", "create", err) }()

	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, s.projectRepo.Exists, input.ProjectID, ErrProjectNotFound, "project"); err != nil {
		return nil, err
	}
	if input.AssigneeID != nil {
		if err := ensureExists(ctx, s.userRepo.Exists, *input.AssigneeID, ErrAssigneeNotFound, "assignee"); err != nil {
			return nil, err
		}
	}
	if err := ensureExists(ctx, s.userRepo.Exists, callerID, ErrCallerNotFound, "caller"); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		ProjectID:      input.ProjectID,
		AssigneeID:     input.AssigneeID,
		CreatedByID:    callerID,
		EstimatedHours: input.EstimatedHours,
		ActualHours:    input.ActualHours,
		StartDate:      input.StartDate,
		DueDate:        input.DueDate,
		CompletedAt:    input.CompletedAt,
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetByID(ctx, created.ID)
}

// Update applies a partial update to a task. Any status may follow any other.
func (s *TaskService) Update(ctx context.Context, id uint64, input UpdateTaskInput) (resp *dto.TaskResponse, err error) {
	defer func() { observe("task", "update", err) }()

	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, ErrTaskNotFound, "task")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.ProjectID.Set {
		if err := ensureExists(ctx, s.projectRepo.Exists, *input.ProjectID.Value, ErrProjectNotFound, "project"); err != nil {
			return nil, err
		}
	}
	if input.AssigneeID.Value != nil {
		if err := ensureExists(ctx, s.userRepo.Exists, *input.AssigneeID.Value, ErrAssigneeNotFound, "assignee"); err != nil {
			return nil, err
		}
	}

	patch := repository.Patch{}
	if input.Title.Set {
		patch["title"] = strings.TrimSpace(*input.Title.Value)
	}
	putOptional(patch, "description", input.Description)
	putOptional(patch, "status", input.Status)
	putOptional(patch, "priority", input.Priority)
	putOptional(patch, "project_id", input.ProjectID)
	putOptional(patch, "assignee_id", input.AssigneeID)
	putOptional(patch, "estimated_hours", input.EstimatedHours)
	putOptional(patch, "actual_hours", input.ActualHours)
	putOptional(patch, "start_date", input.StartDate)
	putOptional(patch, "due_date", input.DueDate)
	putOptional(patch, "completed_at", input.CompletedAt)

	if _, err := s.taskRepo.Update(ctx, id, patch); err != nil {
		return nil, lookupError(err, ErrTaskNotFound, "task")
	}

	return s.GetByID(ctx, id)
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id uint64) (err error) {
	defer func() { observe("task", "delete", err) }()

	ok, err := s.taskRepo.Delete(ctx, id)
	return deleted(ok, err, ErrTaskNotFound, "task")
}

// ProjectTasks returns a page of the tasks of a project
func (s *TaskService) ProjectTasks(ctx context.Context, projectID uint64, skip, limit int) (*dto.TaskListResponse, error) {
	if err := ensureExists(ctx, s.projectRepo.Exists, projectID, ErrProjectNotFound, "project"); err != nil {
		return nil, err
	}
	return s.Search(ctx, repository.TaskFilter{ProjectID: &projectID}, skip, limit)
}

// UserTasks returns a page of the tasks assigned to a user
func (s *TaskService) UserTasks(ctx context.Context, userID uint64, skip, limit int) (*dto.TaskListResponse, error) {
	if err := ensureExists(ctx, s.userRepo.Exists, userID, ErrUserNotFound, "user"); err != nil {
		return nil, err
	}
	return s.Search(ctx, repository.TaskFilter{AssigneeID: &userID}, skip, limit)
}

// Overdue lists tasks past their due date that are not completed
func (s *TaskService) Overdue(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.ListOverdue(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return dto.ToTaskResponses(tasks), nil
}
