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

type TechnologyHandler struct {
	service *services.TechnologyService
	log     *slog.Logger
}

func NewTechnologyHandler(service *services.TechnologyService, log *slog.Logger) *TechnologyHandler {
	return &TechnologyHandler{
		service: service,
		log:     log,
	}
}

// ListTechnologies returns technologies ordered by category then name
func (h *TechnologyHandler) ListTechnologies(c *gin.Context) {
	params, ok := pagination(c, utils.TechnologyPageLimits)
	if !ok {
		return
	}

	q := newQueryFilters(c)
	filter := repository.TechnologyFilter{
		Category: q.String("category"),
	}
	if search := q.String("search"); search != nil {
		filter.Search = *search
	}

	resp, err := h.service.Search(c.Request.Context(), filter, params.Skip, params.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTechnology returns a specific technology by ID
func (h *TechnologyHandler) GetTechnology(c *gin.Context) {
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

// CreateTechnology creates a new technology
func (h *TechnologyHandler) CreateTechnology(c *gin.Context) {
	type CreateTechnologyRequest struct {
		Name        string  `json:"name" binding:"required,min=1,max=100"`
		Category    *string `json:"category" binding:"omitempty,max=50"`
		Description *string `json:"description"`
	}

	var req CreateTechnologyRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), services.CreateTechnologyInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateTechnology applies a partial update; omitted fields are left unchanged
func (h *TechnologyHandler) UpdateTechnology(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateTechnologyRequest struct {
		Name        utils.Optional[string] `json:"name"`
		Category    utils.Optional[string] `json:"category"`
		Description utils.Optional[string] `json:"description"`
	}

	var req UpdateTechnologyRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, services.UpdateTechnologyInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTechnology deletes a technology
func (h *TechnologyHandler) DeleteTechnology(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Technology deleted successfully"})
}

// ListCategories returns the distinct technology categories
func (h *TechnologyHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ListByCategory returns the technologies in one category
func (h *TechnologyHandler) ListByCategory(c *gin.Context) {
	techs, err := h.service.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, techs)
}
