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

type InvoiceHandler struct {
	service *services.InvoiceService
	log     *slog.Logger
}

func NewInvoiceHandler(service *services.InvoiceService, log *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log,
	}
}

// ListInvoices returns a page of invoices with their project embedded
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params, ok := pagination(c, utils.DefaultPageLimits)
	if !ok {
		return
	}

	q := newQueryFilters(c)
	filter := repository.InvoiceFilter{
		ProjectID: q.Uint("project_id"),
	}
	if search := q.String("search"); search != nil {
		filter.Search = *search
	}
	if status := q.Enum("status", func(v string) bool { return models.InvoiceStatus(v).IsValid() }); status != nil {
		s := models.InvoiceStatus(*status)
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

// GetInvoice returns a specific invoice by ID
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
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

// CreateInvoice creates a new invoice
// tax_amount is derived from subtotal and tax_rate when omitted
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	type CreateInvoiceRequest struct {
		InvoiceNumber string               `json:"invoice_number" binding:"required,min=1,max=50"`
		Status        models.InvoiceStatus `json:"status"`
		IssueDate     *time.Time           `json:"issue_date"`
		DueDate       *time.Time           `json:"due_date"`
		PaidDate      *time.Time           `json:"paid_date"`
		Subtotal      float64              `json:"subtotal"`
		TaxRate       *float64             `json:"tax_rate"`
		TaxAmount     *float64             `json:"tax_amount"`
		Total         float64              `json:"total"`
		Notes         *string              `json:"notes"`
		PaymentTerms  *string              `json:"payment_terms"`
		ProjectID     uint64               `json:"project_id" binding:"required"`
	}

	var req CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), services.CreateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		Status:        req.Status,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		PaidDate:      req.PaidDate,
		Subtotal:      req.Subtotal,
		TaxRate:       req.TaxRate,
		TaxAmount:     req.TaxAmount,
		Total:         req.Total,
		Notes:         req.Notes,
		PaymentTerms:  req.PaymentTerms,
		ProjectID:     req.ProjectID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateInvoice applies a partial update; omitted fields are left unchanged
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateInvoiceRequest struct {
		InvoiceNumber utils.Optional[string]               `json:"invoice_number"`
		Status        utils.Optional[models.InvoiceStatus] `json:"status"`
		IssueDate     utils.Optional[time.Time]            `json:"issue_date"`
		DueDate       utils.Optional[time.Time]            `json:"due_date"`
		PaidDate      utils.Optional[time.Time]            `json:"paid_date"`
		Subtotal      utils.Optional[float64]              `json:"subtotal"`
		TaxRate       utils.Optional[float64]              `json:"tax_rate"`
		TaxAmount     utils.Optional[float64]              `json:"tax_amount"`
		Total         utils.Optional[float64]              `json:"total"`
		Notes         utils.Optional[string]               `json:"notes"`
		PaymentTerms  utils.Optional[string]               `json:"payment_terms"`
		ProjectID     utils.Optional[uint64]               `json:"project_id"`
	}

	var req UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, services.UpdateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		Status:        req.Status,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		PaidDate:      req.PaidDate,
		Subtotal:      req.Subtotal,
		TaxRate:       req.TaxRate,
		TaxAmount:     req.TaxAmount,
		Total:         req.Total,
		Notes:         req.Notes,
		PaymentTerms:  req.PaymentTerms,
		ProjectID:     req.ProjectID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteInvoice deletes an invoice; its time entries are unlinked
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Invoice deleted successfully"})
}

// ListProjectInvoices returns every invoice of a project
func (h *InvoiceHandler) ListProjectInvoices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoices, err := h.service.ProjectInvoices(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// ListOverdueInvoices returns sent invoices past their due date
func (h *InvoiceHandler) ListOverdueInvoices(c *gin.Context) {
	invoices, err := h.service.Overdue(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}
