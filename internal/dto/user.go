package dto

import (
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
)

// UserSummary is the one-level view of a user embedded in other responses
type UserSummary struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uint64     `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FullName    *string    `json:"full_name"`
	Role        *string    `json:"role"`
	Seniority   *string    `json:"seniority"`
	Department  *string    `json:"department"`
	HourlyRate  *float64   `json:"hourly_rate"`
	Skills      *string    `json:"skills"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`

	// Not computed yet; always empty
	CurrentProjects []ProjectSummary `json:"current_projects"`
}

// UserListResponse represents a page of users
type UserListResponse struct {
	Total int64          `json:"total"`
	Users []UserResponse `json:"users"`
}

// ToUserSummary converts a User model to UserSummary
func ToUserSummary(user models.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

// ToUserResponse converts a User model to UserResponse
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		FullName:        user.FullName,
		Role:            user.Role,
		Seniority:       user.Seniority,
		Department:      user.Department,
		HourlyRate:      user.HourlyRate,
		Skills:          user.Skills,
		IsActive:        user.IsActive,
		IsSuperuser:     user.IsSuperuser,
		LastLogin:       user.LastLogin,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
		CurrentProjects: []ProjectSummary{},
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = ToUserResponse(user)
	}
	return out
}
