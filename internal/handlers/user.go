package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/services"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

type UserHandler struct {
	service *services.UserService
	log     *slog.Logger
}

func NewUserHandler(service *services.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// ListUsers returns a page of users
// Supports search over name, email and username plus role and is_active filters
func (h *UserHandler) ListUsers(c *gin.Context) {
	params, ok := pagination(c, utils.DefaultPageLimits)
	if !ok {
		return
	}

	q := newQueryFilters(c)
	filter := repository.UserFilter{
		Role:     q.String("role"),
		IsActive: q.Bool("is_active"),
	}
	if search := q.String("search"); search != nil {
		filter.Search = *search
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

// GetUser returns a specific user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
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

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email       string   `json:"email" binding:"required,email"`
		Username    string   `json:"username" binding:"required,min=3,max=100"`
		Password    string   `json:"password" binding:"required,min=6,max=72"`
		FullName    *string  `json:"full_name" binding:"omitempty,max=200"`
		Role        *string  `json:"role" binding:"omitempty,max=100"`
		Seniority   *string  `json:"seniority" binding:"omitempty,max=50"`
		Department  *string  `json:"department" binding:"omitempty,max=100"`
		HourlyRate  *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
		Skills      *string  `json:"skills"`
		IsActive    *bool    `json:"is_active"`
		IsSuperuser *bool    `json:"is_superuser"`
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), services.CreateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		FullName:    req.FullName,
		Role:        req.Role,
		Seniority:   req.Seniority,
		Department:  req.Department,
		HourlyRate:  req.HourlyRate,
		Skills:      req.Skills,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateUser applies a partial update; omitted fields are left unchanged
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Email       utils.Optional[string]  `json:"email"`
		Username    utils.Optional[string]  `json:"username"`
		Password    utils.Optional[string]  `json:"password"`
		FullName    utils.Optional[string]  `json:"full_name"`
		Role        utils.Optional[string]  `json:"role"`
		Seniority   utils.Optional[string]  `json:"seniority"`
		Department  utils.Optional[string]  `json:"department"`
		HourlyRate  utils.Optional[float64] `json:"hourly_rate"`
		Skills      utils.Optional[string]  `json:"skills"`
		IsActive    utils.Optional[bool]    `json:"is_active"`
		IsSuperuser utils.Optional[bool]    `json:"is_superuser"`
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Email.Value != nil && !validEmail(*req.Email.Value) {
		badField(c, "email", "email")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, services.UpdateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		FullName:    req.FullName,
		Role:        req.Role,
		Seniority:   req.Seniority,
		Department:  req.Department,
		HourlyRate:  req.HourlyRate,
		Skills:      req.Skills,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteUser deletes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// ListUsersByRole returns active users holding a role
func (h *UserHandler) ListUsersByRole(c *gin.Context) {
	users, err := h.service.ListActiveByRole(c.Request.Context(), c.Param("role"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
