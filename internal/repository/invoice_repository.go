package repository

import (
	"context"
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var invoiceSearchColumns = []string{"invoice_number", "notes"}

// GormInvoiceRepository is a GORM implementation of InvoiceRepository
type GormInvoiceRepository struct {
	*GormRepository[models.Invoice]
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &GormInvoiceRepository{GormRepository: NewGormRepository[models.Invoice](db)}
}

// FindByIDWithRelations finds an invoice with its project loaded
func (r *GormInvoiceRepository) FindByIDWithRelations(ctx context.Context, id uint64) (*models.Invoice, error) {
	return r.FindByID(ctx, id, "Project")
}

// Search lists invoices matching filter, newest first
func (r *GormInvoiceRepository) Search(ctx context.Context, filter InvoiceFilter, skip, limit int) ([]models.Invoice, int64, error) {
	return r.Find(ctx, Query{
		Filters: Filters{
			"status":     filter.Status,
			"project_id": filter.ProjectID,
		},
		Term:          filter.Search,
		SearchColumns: invoiceSearchColumns,
		Order:         []string{"created_at DESC", "id DESC"},
		Preloads:      []string{"Project"},
	}, skip, limit)
}

// FindByNumber finds an invoice by invoice number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return r.FindOneBy(ctx, "invoice_number", number)
}

// ListByProject lists every invoice of a project, newest first
func (r *GormInvoiceRepository) ListByProject(ctx context.Context, projectID uint64) ([]models.Invoice, error) {
	return r.FindAll(ctx, Query{
		Filters:  Filters{"project_id": projectID},
		Order:    []string{"created_at DESC", "id DESC"},
		Preloads: []string{"Project"},
	})
}

// ListOverdue lists sent or overdue invoices whose due date is before now
func (r *GormInvoiceRepository) ListOverdue(ctx context.Context, now time.Time) ([]models.Invoice, error) {
	return r.FindAll(ctx, Query{
		Conditions: []clause.Expression{
			clause.Lt{Column: clause.Column{Name: "due_date"}, Value: now},
			clause.IN{
				Column: clause.Column{Name: "status"},
				Values: []any{models.InvoiceStatusSent, models.InvoiceStatusOverdue},
			},
		},
		Order:    []string{"due_date ASC", "id ASC"},
		Preloads: []string{"Project"},
	})
}
