package dto

import (
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
)

// ProjectSummary is the one-level view of a project embedded in other responses
type ProjectSummary struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	ClientName *string `json:"client_name"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	ClientName  *string              `json:"client_name"`
	Status      models.ProjectStatus `json:"status"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	Budget      *float64             `json:"budget"`
	HourlyRate  *float64             `json:"hourly_rate"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at"`

	// Placeholders until membership and aggregates are wired
	Members       []UserSummary       `json:"members"`
	Technologies  []TechnologySummary `json:"technologies"`
	TotalHours    float64             `json:"total_hours"`
	TotalInvoiced float64             `json:"total_invoiced"`
}

// ProjectListResponse represents a page of projects
type ProjectListResponse struct {
	Total    int64             `json:"total"`
	Projects []ProjectResponse `json:"projects"`
}

// HoursSummaryResponse aggregates the hours logged against a project
type HoursSummaryResponse struct {
	ProjectID        uint64  `json:"project_id"`
	TotalHours       float64 `json:"total_hours"`
	BillableHours    float64 `json:"billable_hours"`
	NonBillableHours float64 `json:"non_billable_hours"`
}

// ToProjectSummary converts a Project model to ProjectSummary
func ToProjectSummary(project models.Project) ProjectSummary {
	return ProjectSummary{
		ID:         project.ID,
		Name:       project.Name,
		ClientName: project.ClientName,
	}
}

// ToProjectResponse converts a Project model to ProjectResponse
func ToProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:           project.ID,
		Name:         project.Name,
		Description:  project.Description,
		ClientName:   project.ClientName,
		Status:       project.Status,
		StartDate:    project.StartDate,
		EndDate:      project.EndDate,
		Budget:       project.Budget,
		HourlyRate:   project.HourlyRate,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
		Members:      []UserSummary{},
		Technologies: []TechnologySummary{},
	}
}

// ToProjectResponses converts a slice of projects
func ToProjectResponses(projects []models.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		out[i] = ToProjectResponse(project)
	}
	return out
}
