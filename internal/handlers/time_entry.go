package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/services"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

type TimeEntryHandler struct {
	service *services.TimeEntryService
	log     *slog.Logger
}

func NewTimeEntryHandler(service *services.TimeEntryService, log *slog.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		service: service,
		log:     log,
	}
}

// ListTimeEntries returns a page of time entries, most recent date first
// start_date and end_date bound the entry date inclusively
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	params, ok := pagination(c, utils.DefaultPageLimits)
	if !ok {
		return
	}

	q := newQueryFilters(c)
	filter := repository.TimeEntryFilter{
		UserID:    q.Uint("user_id"),
		ProjectID: q.Uint("project_id"),
		TaskID:    q.Uint("task_id"),
		Billable:  q.Bool("billable"),
		Billed:    q.Bool("billed"),
		StartDate: q.Date("start_date"),
		EndDate:   q.Date("end_date"),
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

// GetTimeEntry returns a specific time entry by ID
func (h *TimeEntryHandler) GetTimeEntry(c *gin.Context) {
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

// CreateTimeEntry logs hours against a project
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	type CreateTimeEntryRequest struct {
		Hours       float64   `json:"hours" binding:"gt=0"`
		Description *string   `json:"description"`
		Date        time.Time `json:"date" binding:"required"`
		UserID      uint64    `json:"user_id" binding:"required"`
		ProjectID   uint64    `json:"project_id" binding:"required"`
		TaskID      *uint64   `json:"task_id"`
		Billable    *bool     `json:"billable"`
		Billed      *bool     `json:"billed"`
		InvoiceID   *uint64   `json:"invoice_id"`
	}

	var req CreateTimeEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), services.CreateTimeEntryInput{
		Hours:       req.Hours,
		Description: req.Description,
		Date:        req.Date,
		UserID:      req.UserID,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Billable:    req.Billable,
		Billed:      req.Billed,
		InvoiceID:   req.InvoiceID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateTimeEntry applies a partial update; omitted fields are left unchanged
func (h *TimeEntryHandler) UpdateTimeEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateTimeEntryRequest struct {
		Hours       utils.Optional[float64]   `json:"hours"`
		Description utils.Optional[string]    `json:"description"`
		Date        utils.Optional[time.Time] `json:"date"`
		UserID      utils.Optional[uint64]    `json:"user_id"`
		ProjectID   utils.Optional[uint64]    `json:"project_id"`
		TaskID      utils.Optional[uint64]    `json:"task_id"`
		Billable    utils.Optional[bool]      `json:"billable"`
		Billed      utils.Optional[bool]      `json:"billed"`
		InvoiceID   utils.Optional[uint64]    `json:"invoice_id"`
	}

	var req UpdateTimeEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, services.UpdateTimeEntryInput{
		Hours:       req.Hours,
		Description: req.Description,
		Date:        req.Date,
		UserID:      req.UserID,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Billable:    req.Billable,
		Billed:      req.Billed,
		InvoiceID:   req.InvoiceID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTimeEntry deletes a time entry
func (h *TimeEntryHandler) DeleteTimeEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Time entry deleted successfully"})
}

// ListUserTimeEntries returns a page of the entries logged by a user
func (h *TimeEntryHandler) ListUserTimeEntries(c *gin.Context) {
	h.listBy(c, h.service.UserEntries)
}

// ListProjectTimeEntries returns a page of the entries logged against a project
func (h *TimeEntryHandler) ListProjectTimeEntries(c *gin.Context) {
	h.listBy(c, h.service.ProjectEntries)
}

func (h *TimeEntryHandler) listBy(c *gin.Context, list func(ctx context.Context, id uint64, skip, limit int) (*dto.TimeEntryListResponse, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	params, ok := pagination(c, utils.DefaultPageLimits)
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

// ListUnbilledTimeEntries returns billable entries not yet invoiced
// Can filter by user_id
func (h *TimeEntryHandler) ListUnbilledTimeEntries(c *gin.Context) {
	q := newQueryFilters(c)
	userID := q.Uint("user_id")
	if !q.ok() {
		return
	}

	entries, err := h.service.Unbilled(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetProjectHoursSummary totals the hours logged against a project
func (h *TimeEntryHandler) GetProjectHoursSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.service.HoursSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
