package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/lynxview-api/internal/constants"
	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNumberTaken     = validationError("an invoice with this number already exists")
	ErrInvalidInvoiceStatus   = validationError("status must be one of draft, sent, paid, overdue, cancelled")
	ErrTaxRateOutOfRange      = validationError("tax_rate must be between 0 and 100")
	ErrNegativeInvoiceAmounts = validationError("subtotal, tax_amount and total must be greater than or equal to 0")
)

// InvoiceService handles invoice business logic
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, projectRepo repository.ProjectRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

// CreateInvoiceInput represents input for creating an invoice.
// TaxRate defaults to 21; TaxAmount is derived when omitted.
type CreateInvoiceInput struct {
	InvoiceNumber string
	Status        models.InvoiceStatus
	IssueDate     *time.Time
	DueDate       *time.Time
	PaidDate      *time.Time
	Subtotal      float64
	TaxRate       *float64
	TaxAmount     *float64
	Total         float64
	Notes         *string
	PaymentTerms  *string
	ProjectID     uint64
}

// UpdateInvoiceInput represents a partial update of an invoice
type UpdateInvoiceInput struct {
	InvoiceNumber utils.Optional[string]
	Status        utils.Optional[models.InvoiceStatus]
	IssueDate     utils.Optional[time.Time]
	DueDate       utils.Optional[time.Time]
	PaidDate      utils.Optional[time.Time]
	Subtotal      utils.Optional[float64]
	TaxRate       utils.Optional[float64]
	TaxAmount     utils.Optional[float64]
	Total         utils.Optional[float64]
	Notes         utils.Optional[string]
	PaymentTerms  utils.Optional[string]
	ProjectID     utils.Optional[uint64]
}

func (in CreateInvoiceInput) validate() error {
	if err := checkLength("invoice_number", in.InvoiceNumber, 1, 50); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.IsValid() {
		return ErrInvalidInvoiceStatus
	}
	if in.TaxRate != nil && (*in.TaxRate < 0 || *in.TaxRate > 100) {
		return ErrTaxRateOutOfRange
	}
	if in.Subtotal < 0 || in.Total < 0 || (in.TaxAmount != nil && *in.TaxAmount < 0) {
		return ErrNegativeInvoiceAmounts
	}
	return nil
}

func (in UpdateInvoiceInput) validate() error {
	if err := errors.Join(
		notNull(in.InvoiceNumber, "invoice_number"),
		notNull(in.Status, "status"),
		notNull(in.Subtotal, "subtotal"),
		notNull(in.TaxRate, "tax_rate"),
		notNull(in.Total, "total"),
		notNull(in.ProjectID, "project_id"),
	); err != nil {
		return err
	}
	if in.InvoiceNumber.Set {
		if err := checkLength("invoice_number", *in.InvoiceNumber.Value, 1, 50); err != nil {
			return err
		}
	}
	if in.Status.Set && !in.Status.Value.IsValid() {
		return ErrInvalidInvoiceStatus
	}
	if in.TaxRate.Set && (*in.TaxRate.Value < 0 || *in.TaxRate.Value > 100) {
		return ErrTaxRateOutOfRange
	}
	for _, v := range []*float64{in.Subtotal.Value, in.Total.Value, in.TaxAmount.Value} {
		if v != nil && *v < 0 {
			return ErrNegativeInvoiceAmounts
		}
	}
	return nil
}

// TaxAmount computes the tax owed on subtotal at rate percent
func TaxAmount(subtotal, rate float64) float64 {
	return subtotal * rate / 100
}

// Search returns a page of invoices matching filter
func (s *InvoiceService) Search(ctx context.Context, filter repository.InvoiceFilter, skip, limit int) (*dto.InvoiceListResponse, error) {
	invoices, total, err := s.invoiceRepo.Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search invoices: %w", err)
	}

	return &dto.InvoiceListResponse{
		Total:    total,
		Invoices: dto.ToInvoiceResponses(invoices),
	}, nil
}

// GetByID returns an invoice with its project summary
func (s *InvoiceService) GetByID(ctx context.Context, id uint64) (*dto.InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrInvoiceNotFound, "invoice")
	}

	resp := dto.ToInvoiceResponse(*invoice)
	return &resp, nil
}

// Create creates an invoice against an existing project with a unique number
func (s *InvoiceService) Create(ctx context.Context, input CreateInvoiceInput) (resp *dto.InvoiceResponse, err error) {
	defer func() { observe("invoice", "create", err) }()

	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, s.projectRepo.Exists, input.ProjectID, ErrProjectNotFound, "project"); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.InvoiceNumber)
	if err := s.ensureNumberFree(ctx, number, 0); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}
	taxRate := constants.DefaultTaxRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}
	taxAmount := input.TaxAmount
	if taxAmount == nil {
		taxAmount = ptr(TaxAmount(input.Subtotal, taxRate))
	}

	invoice := &models.Invoice{
		InvoiceNumber: number,
		Status:        status,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		PaidDate:      input.PaidDate,
		Subtotal:      input.Subtotal,
		TaxRate:       taxRate,
		TaxAmount:     taxAmount,
		Total:         input.Total,
		Notes:         input.Notes,
		PaymentTerms:  input.PaymentTerms,
		ProjectID:     input.ProjectID,
	}

	created, err := s.invoiceRepo.Create(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return s.GetByID(ctx, created.ID)
}

// Update applies a partial update to an invoice. When subtotal or tax_rate
// change and tax_amount is not supplied, tax_amount is recomputed.
func (s *InvoiceService) Update(ctx context.Context, id uint64, input UpdateInvoiceInput) (resp *dto.InvoiceResponse, err error) {
	defer func() { observe("invoice", "update", err) }()

	current, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrInvoiceNotFound, "invoice")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	if input.InvoiceNumber.Set {
		number := strings.TrimSpace(*input.InvoiceNumber.Value)
		if number != current.InvoiceNumber {
			if err := s.ensureNumberFree(ctx, number, id); err != nil {
				return nil, err
			}
		}
		patch["invoice_number"] = number
	}
	if input.ProjectID.Set {
		if err := ensureExists(ctx, s.projectRepo.Exists, *input.ProjectID.Value, ErrProjectNotFound, "project"); err != nil {
			return nil, err
		}
	}

	putOptional(patch, "status", input.Status)
	putOptional(patch, "issue_date", input.IssueDate)
	putOptional(patch, "due_date", input.DueDate)
	putOptional(patch, "paid_date", input.PaidDate)
	putOptional(patch, "subtotal", input.Subtotal)
	putOptional(patch, "tax_rate", input.TaxRate)
	putOptional(patch, "tax_amount", input.TaxAmount)
	putOptional(patch, "total", input.Total)
	putOptional(patch, "notes", input.Notes)
	putOptional(patch, "payment_terms", input.PaymentTerms)
	putOptional(patch, "project_id", input.ProjectID)

	if (input.Subtotal.Set || input.TaxRate.Set) && !input.TaxAmount.Set {
		subtotal := *effective(input.Subtotal, &current.Subtotal)
		rate := *effective(input.TaxRate, &current.TaxRate)
		patch["tax_amount"] = TaxAmount(subtotal, rate)
	}

	if _, err := s.invoiceRepo.Update(ctx, id, patch); err != nil {
		return nil, lookupError(err, ErrInvoiceNotFound, "invoice")
	}

	return s.GetByID(ctx, id)
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, id uint64) (err error) {
	defer func() { observe("invoice", "delete", err) }()

	ok, err := s.invoiceRepo.Delete(ctx, id)
	return deleted(ok, err, ErrInvoiceNotFound, "invoice")
}

// ProjectInvoices lists every invoice of a project
func (s *InvoiceService) ProjectInvoices(ctx context.Context, projectID uint64) ([]dto.InvoiceResponse, error) {
	if err := ensureExists(ctx, s.projectRepo.Exists, projectID, ErrProjectNotFound, "project"); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project invoices: %w", err)
	}
	return dto.ToInvoiceResponses(invoices), nil
}

// Overdue lists sent or overdue invoices past their due date
func (s *InvoiceService) Overdue(ctx context.Context) ([]dto.InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.ListOverdue(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue invoices: %w", err)
	}
	return dto.ToInvoiceResponses(invoices), nil
}

func (s *InvoiceService) ensureNumberFree(ctx context.Context, number string, selfID uint64) error {
	existing, err := s.invoiceRepo.FindByNumber(ctx, number)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check invoice number: %w", err)
	}
	if existing.ID != selfID {
		return ErrInvoiceNumberTaken
	}
	return nil
}
