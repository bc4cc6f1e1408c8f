package dto

import (
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
)

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uint64               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	Status        models.InvoiceStatus `json:"status"`
	IssueDate     *time.Time           `json:"issue_date"`
	DueDate       *time.Time           `json:"due_date"`
	PaidDate      *time.Time           `json:"paid_date"`
	Subtotal      float64              `json:"subtotal"`
	TaxRate       float64              `json:"tax_rate"`
	TaxAmount     *float64             `json:"tax_amount"`
	Total         float64              `json:"total"`
	Notes         *string              `json:"notes"`
	PaymentTerms  *string              `json:"payment_terms"`
	ProjectID     uint64               `json:"project_id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     *time.Time           `json:"updated_at"`

	Project *ProjectSummary `json:"project"`
}

// InvoiceListResponse represents a page of invoices
type InvoiceListResponse struct {
	Total    int64             `json:"total"`
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse converts an Invoice model to InvoiceResponse
func ToInvoiceResponse(invoice models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		Status:        invoice.Status,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		PaidDate:      invoice.PaidDate,
		Subtotal:      invoice.Subtotal,
		TaxRate:       invoice.TaxRate,
		TaxAmount:     invoice.TaxAmount,
		Total:         invoice.Total,
		Notes:         invoice.Notes,
		PaymentTerms:  invoice.PaymentTerms,
		ProjectID:     invoice.ProjectID,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
		Project:       projectSummaryOf(invoice.Project),
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []models.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		out[i] = ToInvoiceResponse(invoice)
	}
	return out
}
