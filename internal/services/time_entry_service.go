package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

var (
	ErrInvalidHours = validationError("hours must be greater than 0")
	ErrDateRequired = validationError("date is required")
)

// TimeEntryService handles time entry business logic
type TimeEntryService struct {
	entryRepo   repository.TimeEntryRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	invoiceRepo repository.InvoiceRepository
}

// NewTimeEntryService creates a new TimeEntryService
func NewTimeEntryService(
	entryRepo repository.TimeEntryRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	invoiceRepo repository.InvoiceRepository,
) *TimeEntryService {
	return &TimeEntryService{
		entryRepo:   entryRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		invoiceRepo: invoiceRepo,
	}
}

// CreateTimeEntryInput represents input for logging time.
// Billable defaults to true and Billed to false.
type CreateTimeEntryInput struct {
	Hours       float64
	Description *string
	Date        time.Time
	UserID      uint64
	ProjectID   uint64
	TaskID      *uint64
	Billable    *bool
	Billed      *bool
	InvoiceID   *uint64
}

// UpdateTimeEntryInput represents a partial update of a time entry
type UpdateTimeEntryInput struct {
	Hours       utils.Optional[float64]
	Description utils.Optional[string]
	Date        utils.Optional[time.Time]
	UserID      utils.Optional[uint64]
	ProjectID   utils.Optional[uint64]
	TaskID      utils.Optional[uint64]
	Billable    utils.Optional[bool]
	Billed      utils.Optional[bool]
	InvoiceID   utils.Optional[uint64]
}

func (in CreateTimeEntryInput) validate() error {
	if in.Hours <= 0 {
		return ErrInvalidHours
	}
	if in.Date.IsZero() {
		return ErrDateRequired
	}
	return nil
}

func (in UpdateTimeEntryInput) validate() error {
	if err := errors.Join(
		notNull(in.Hours, "hours"),
		notNull(in.Date, "date"),
		notNull(in.UserID, "user_id"),
		notNull(in.ProjectID, "project_id"),
		notNull(in.Billable, "billable"),
		notNull(in.Billed, "billed"),
	); err != nil {
		return err
	}
	if in.Hours.Set && *in.Hours.Value <= 0 {
		return ErrInvalidHours
	}
	if in.Date.Set && in.Date.Value.IsZero() {
		return ErrDateRequired
	}
	return nil
}

// Search returns a page of time entries matching filter
func (s *TimeEntryService) Search(ctx context.Context, filter repository.TimeEntryFilter, skip, limit int) (*dto.TimeEntryListResponse, error) {
	entries, total, err := s.entryRepo.Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search time entries: %w", err)
	}

	return &dto.TimeEntryListResponse{
		Total:       total,
		TimeEntries: dto.ToTimeEntryResponses(entries),
	}, nil
}

// GetByID returns a time entry with its user, project and task summaries
func (s *TimeEntryService) GetByID(ctx context.Context, id uint64) (*dto.TimeEntryResponse, error) {
	entry, err := s.entryRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrTimeEntryNotFound, "time entry")
	}

	resp := dto.ToTimeEntryResponse(*entry)
	return &resp, nil
}

// Create logs time after checking hours and every referenced row
func (s *TimeEntryService) Create(ctx context.Context, input CreateTimeEntryInput) (resp *dto.TimeEntryResponse, err error) {
	defer func() { observe("time_entry", "create", err) }()

	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, &input.UserID, &input.ProjectID, input.TaskID, input.InvoiceID); err != nil {
		return nil, err
	}

	entry := &models.TimeEntry{
		Hours:       input.Hours,
		Description: input.Description,
		Date:        input.Date,
		UserID:      input.UserID,
		ProjectID:   input.ProjectID,
		TaskID:      input.TaskID,
		Billable:    true,
		InvoiceID:   input.InvoiceID,
	}
	if input.Billable != nil {
		entry.Billable = *input.Billable
	}
	if input.Billed != nil {
		entry.Billed = *input.Billed
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	return s.GetByID(ctx, created.ID)
}

// Update applies a partial update to a time entry
func (s *TimeEntryService) Update(ctx context.Context, id uint64, input UpdateTimeEntryInput) (resp *dto.TimeEntryResponse, err error) {
	defer func() { observe("time_entry", "update", err) }()

	if _, err := s.entryRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, ErrTimeEntryNotFound, "time entry")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, input.UserID.Value, input.ProjectID.Value, input.TaskID.Value, input.InvoiceID.Value); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	putOptional(patch, "hours", input.Hours)
	putOptional(patch, "description", input.Description)
	putOptional(patch, "date", input.Date)
	putOptional(patch, "user_id", input.UserID)
	putOptional(patch, "project_id", input.ProjectID)
	putOptional(patch, "task_id", input.TaskID)
	putOptional(patch, "billable", input.Billable)
	putOptional(patch, "billed", input.Billed)
	putOptional(patch, "invoice_id", input.InvoiceID)

	if _, err := s.entryRepo.Update(ctx, id, patch); err != nil {
		return nil, lookupError(err, ErrTimeEntryNotFound, "time entry")
	}

	return s.GetByID(ctx, id)
}

// Delete removes a time entry
func (s *TimeEntryService) Delete(ctx context.Context, id uint64) (err error) {
	defer func() { observe("time_entry", "delete", err) }()

	ok, err := s.entryRepo.Delete(ctx, id)
	return deleted(ok, err, ErrTimeEntryNotFound, "time entry")
}

// UserEntries returns a page of the entries logged by a user
func (s *TimeEntryService) UserEntries(ctx context.Context, userID uint64, skip, limit int) (*dto.TimeEntryListResponse, error) {
	if err := ensureExists(ctx, s.userRepo.Exists, userID, ErrUserNotFound, "user"); err != nil {
		return nil, err
	}
	return s.Search(ctx, repository.TimeEntryFilter{UserID: &userID}, skip, limit)
}

// ProjectEntries returns a page of the entries logged against a project
func (s *TimeEntryService) ProjectEntries(ctx context.Context, projectID uint64, skip, limit int) (*dto.TimeEntryListResponse, error) {
	if err := ensureExists(ctx, s.projectRepo.Exists, projectID, ErrProjectNotFound, "project"); err != nil {
		return nil, err
	}
	return s.Search(ctx, repository.TimeEntryFilter{ProjectID: &projectID}, skip, limit)
}

// Unbilled lists billable entries not yet invoiced, optionally for one user
func (s *TimeEntryService) Unbilled(ctx context.Context, userID *uint64) ([]dto.TimeEntryResponse, error) {
	entries, err := s.entryRepo.ListUnbilled(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unbilled time entries: %w", err)
	}
	return dto.ToTimeEntryResponses(entries), nil
}

// HoursSummary totals the hours logged against a project
func (s *TimeEntryService) HoursSummary(ctx context.Context, projectID uint64) (*dto.HoursSummaryResponse, error) {
	if err := ensureExists(ctx, s.projectRepo.Exists, projectID, ErrProjectNotFound, "project"); err != nil {
		return nil, err
	}

	summary, err := s.entryRepo.HoursSummary(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize project hours: %w", err)
	}

	return &dto.HoursSummaryResponse{
		ProjectID:        projectID,
		TotalHours:       summary.TotalHours,
		BillableHours:    summary.BillableHours,
		NonBillableHours: summary.TotalHours - summary.BillableHours,
	}, nil
}

// ensureReferences checks each non-nil reference resolves to a row
func (s *TimeEntryService) ensureReferences(ctx context.Context, userID, projectID, taskID, invoiceID *uint64) error {
	checks := []struct {
		id       *uint64
		exists   existsFunc
		notFound error
		what     string
	}{
		{userID, s.userRepo.Exists, ErrUserNotFound, "user"},
		{projectID, s.projectRepo.Exists, ErrProjectNotFound, "project"},
		{taskID, s.taskRepo.Exists, ErrTaskNotFound, "task"},
		{invoiceID, s.invoiceRepo.Exists, ErrInvoiceNotFound, "invoice"},
	}

	for _, check := range checks {
		if check.id == nil {
			continue
		}
		if err := ensureExists(ctx, check.exists, *check.id, check.notFound, check.what); err != nil {
			return err
		}
	}
	return nil
}
