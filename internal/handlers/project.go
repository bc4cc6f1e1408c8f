package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/services"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

type ProjectHandler struct {
	service *services.ProjectService
	log     *slog.Logger
}

func NewProjectHandler(service *services.ProjectService, log *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		log:     log,
	}
}

// ListProjects returns a page of projects
// Supports search over name, client name and description plus a status filter
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params, ok := pagination(c, utils.DefaultPageLimits)
	if !ok {
		return
	}

	q := newQueryFilters(c)
	var filter repository.ProjectFilter
	if search := q.String("search"); search != nil {
		filter.Search = *search
	}
	if status := q.Enum("status", func(v string) bool { return models.ProjectStatus(v).IsValid() }); status != nil {
		s := models.ProjectStatus(*status)
		filter.Status = &s
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

// GetProject returns a specific project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
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

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name          string               `json:"name" binding:"required,min=1,max=200"`
		Description   *string              `json:"description"`
		ClientName    *string              `json:"client_name" binding:"omitempty,max=200"`
		Status        models.ProjectStatus `json:"status"`
		StartDate     *time.Time           `json:"start_date"`
		EndDate       *time.Time           `json:"end_date"`
		Budget        *float64             `json:"budget"`
		HourlyRate    *float64             `json:"hourly_rate"`
		MemberIDs     []uint64             `json:"member_ids"`
		TechnologyIDs []uint64             `json:"technology_ids"`
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), services.CreateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		ClientName:    req.ClientName,
		Status:        req.Status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		HourlyRate:    req.HourlyRate,
		MemberIDs:     req.MemberIDs,
		TechnologyIDs: req.TechnologyIDs,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateProject applies a partial update; omitted fields are left unchanged
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name          utils.Optional[string]               `json:"name"`
		Description   utils.Optional[string]               `json:"description"`
		ClientName    utils.Optional[string]               `json:"client_name"`
		Status        utils.Optional[models.ProjectStatus] `json:"status"`
		StartDate     utils.Optional[time.Time]            `json:"start_date"`
		EndDate       utils.Optional[time.Time]            `json:"end_date"`
		Budget        utils.Optional[float64]              `json:"budget"`
		HourlyRate    utils.Optional[float64]              `json:"hourly_rate"`
		MemberIDs     utils.Optional[[]uint64]             `json:"member_ids"`
		TechnologyIDs utils.Optional[[]uint64]             `json:"technology_ids"`
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, services.UpdateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		ClientName:    req.ClientName,
		Status:        req.Status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		HourlyRate:    req.HourlyRate,
		MemberIDs:     req.MemberIDs,
		TechnologyIDs: req.TechnologyIDs,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProject deletes a project along with its tasks, invoices and time entries
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Project deleted successfully"})
}
