package dto

import (
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
)

// TimeEntryResponse represents a time entry in API responses
type TimeEntryResponse struct {
	ID          uint64     `json:"id"`
	Hours       float64    `json:"hours"`
	Description *string    `json:"description"`
	Date        time.Time  `json:"date"`
	UserID      uint64     `json:"user_id"`
	ProjectID   uint64     `json:"project_id"`
	TaskID      *uint64    `json:"task_id"`
	Billable    bool       `json:"billable"`
	Billed      bool       `json:"billed"`
	InvoiceID   *uint64    `json:"invoice_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`

	User    *UserSummary    `json:"user"`
	Project *ProjectSummary `json:"project"`
	Task    *TaskSummary    `json:"task"`
}

// TimeEntryListResponse represents a page of time entries
type TimeEntryListResponse struct {
	Total       int64               `json:"total"`
	TimeEntries []TimeEntryResponse `json:"time_entries"`
}

// ToTimeEntryResponse converts a TimeEntry model to TimeEntryResponse
func ToTimeEntryResponse(entry models.TimeEntry) TimeEntryResponse {
	dto := TimeEntryResponse{
		ID:          entry.ID,
		Hours:       entry.Hours,
		Description: entry.Description,
		Date:        entry.Date,
		UserID:      entry.UserID,
		ProjectID:   entry.ProjectID,
		TaskID:      entry.TaskID,
		Billable:    entry.Billable,
		Billed:      entry.Billed,
		InvoiceID:   entry.InvoiceID,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
		User:        userSummaryOf(entry.User),
		Project:     projectSummaryOf(entry.Project),
	}

	if entry.Task != nil && entry.Task.ID != 0 {
		task := ToTaskSummary(*entry.Task)
		dto.Task = &task
	}

	return dto
}

// ToTimeEntryResponses converts a slice of time entries
func ToTimeEntryResponses(entries []models.TimeEntry) []TimeEntryResponse {
	out := make([]TimeEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = ToTimeEntryResponse(entry)
	}
	return out
}
