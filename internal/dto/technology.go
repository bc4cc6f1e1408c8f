package dto

import (
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
)

// TechnologySummary is the one-level view of a technology
type TechnologySummary struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Category *string `json:"category"`
}

// TechnologyResponse represents a technology in API responses
type TechnologyResponse struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TechnologyListResponse represents a page of technologies
type TechnologyListResponse struct {
	Total        int64                `json:"total"`
	Technologies []TechnologyResponse `json:"technologies"`
}

// ToTechnologyResponse converts a Technology model to TechnologyResponse
func ToTechnologyResponse(tech models.Technology) TechnologyResponse {
	return TechnologyResponse{
		ID:          tech.ID,
		Name:        tech.Name,
		Category:    tech.Category,
		Description: tech.Description,
		CreatedAt:   tech.CreatedAt,
		UpdatedAt:   tech.UpdatedAt,
	}
}

// ToTechnologyResponses converts a slice of technologies
func ToTechnologyResponses(techs []models.Technology) []TechnologyResponse {
	out := make([]TechnologyResponse, len(techs))
	for i, tech := range techs {
		out[i] = ToTechnologyResponse(tech)
	}
	return out
}
