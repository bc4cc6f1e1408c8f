package dto

import (
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
)

// TaskSummary is the one-level view of a task embedded in other responses
type TaskSummary struct {
	ID     uint64            `json:"id"`
	Title  string            `json:"title"`
	Status models.TaskStatus `json:"status"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	Description    *string             `json:"description"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	ProjectID      uint64              `json:"project_id"`
	AssigneeID     *uint64             `json:"assignee_id"`
	CreatedByID    uint64              `json:"created_by_id"`
	EstimatedHours *float64            `json:"estimated_hours"`
	ActualHours    *float64            `json:"actual_hours"`
	StartDate      *time.Time          `json:"start_date"`
	DueDate        *time.Time          `json:"due_date"`
	CompletedAt    *time.Time          `json:"completed_at"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      *time.Time          `json:"updated_at"`

	Project   *ProjectSummary `json:"project"`
	Assignee  *UserSummary    `json:"assignee"`
	CreatedBy *UserSummary    `json:"created_by"`
}

// TaskListResponse represents a page of tasks
type TaskListResponse struct {
	Total int64          `json:"total"`
	Tasks []TaskResponse `json:"tasks"`
}

// ToTaskSummary converts a Task model to TaskSummary
func ToTaskSummary(task models.Task) TaskSummary {
	return TaskSummary{
		ID:     task.ID,
		Title:  task.Title,
		Status: task.Status,
	}
}

// ToTaskResponse converts a Task model to TaskResponse.
// Relations are included only if preloaded.
func ToTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		ProjectID:      task.ProjectID,
		AssigneeID:     task.AssigneeID,
		CreatedByID:    task.CreatedByID,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		StartDate:      task.StartDate,
		DueDate:        task.DueDate,
		CompletedAt:    task.CompletedAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
		Project:        projectSummaryOf(task.Project),
		Assignee:       userSummaryOf(task.Assignee),
		CreatedBy:      userSummaryOf(task.CreatedBy),
	}
}

// ToTaskResponses converts a slice of tasks
func ToTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskResponse(task)
	}
	return out
}
