package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

var (
	ErrInvalidDateRange     = validationError("start_date must be before end_date")
	ErrInvalidProjectStatus = validationError("status must be one of planning, active, on_hold, completed")
	ErrNegativeBudget       = validationError("budget must be greater than or equal to 0")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	log         *slog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, log *slog.Logger) *ProjectService {
	if log == nil {
		log = slog.Default()
	}
	return &ProjectService{
		projectRepo: projectRepo,
		log:         log,
	}
}

// CreateProjectInput represents input for creating a project.
// MemberIDs and TechnologyIDs are accepted but not persisted yet.
type CreateProjectInput struct {
	Name          string
	Description   *string
	ClientName    *string
	Status        models.ProjectStatus
	StartDate     *time.Time
	EndDate       *time.Time
	Budget        *float64
	HourlyRate    *float64
	MemberIDs     []uint64
	TechnologyIDs []uint64
}

// UpdateProjectInput represents a partial update of a project
type UpdateProjectInput struct {
	Name          utils.Optional[string]
	Description   utils.Optional[string]
	ClientName    utils.Optional[string]
	Status        utils.Optional[models.ProjectStatus]
	StartDate     utils.Optional[time.Time]
	EndDate       utils.Optional[time.Time]
	Budget        utils.Optional[float64]
	HourlyRate    utils.Optional[float64]
	MemberIDs     utils.Optional[[]uint64]
	TechnologyIDs utils.Optional[[]uint64]
}

func (in CreateProjectInput) validate() error {
	if err := checkLength("name", in.Name, 1, 200); err != nil {
		return err
	}
	if err := checkOptionalLength("client_name", in.ClientName, 200); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.IsValid() {
		return ErrInvalidProjectStatus
	}
	if in.Budget != nil && *in.Budget < 0 {
		return ErrNegativeBudget
	}
	if err := checkNonNegative("hourly_rate", in.HourlyRate); err != nil {
		return err
	}
	return checkDateRange(in.StartDate, in.EndDate)
}

func (in UpdateProjectInput) validate(current *models.Project) error {
	if err := errors.Join(notNull(in.Name, "name"), notNull(in.Status, "status")); err != nil {
		return err
	}
	if in.Name.Set {
		if err := checkLength("name", *in.Name.Value, 1, 200); err != nil {
			return err
		}
	}
	if err := checkOptionalLength("client_name", in.ClientName.Value, 200); err != nil {
		return err
	}
	if in.Status.Set && !in.Status.Value.IsValid() {
		return ErrInvalidProjectStatus
	}
	if in.Budget.Value != nil && *in.Budget.Value < 0 {
		return ErrNegativeBudget
	}
	if err := checkNonNegative("hourly_rate", in.HourlyRate.Value); err != nil {
		return err
	}
	return checkDateRange(effective(in.StartDate, current.StartDate), effective(in.EndDate, current.EndDate))
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && !start.Before(*end) {
		return ErrInvalidDateRange
	}
	return nil
}

// Search returns a page of projects matching filter
func (s *ProjectService) Search(ctx context.Context, filter repository.ProjectFilter, skip, limit int) (*dto.ProjectListResponse, error) {
	projects, total, err := s.projectRepo.Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	return &dto.ProjectListResponse{
		Total:    total,
		Projects: dto.ToProjectResponses(projects),
	}, nil
}

// GetByID returns a project
func (s *ProjectService) GetByID(ctx context.Context, id uint64) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "project")
	}

	resp := dto.ToProjectResponse(*project)
	return &resp, nil
}

// Create creates a project
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (resp *dto.ProjectResponse, err error) {
	defer func() { observe("project", "create", err) }()

	if err := input.validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}

	project := &models.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ClientName:  input.ClientName,
		Status:      status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Budget:      input.Budget,
		HourlyRate:  input.HourlyRate,
	}

	created, err := s.projectRepo.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	s.warnUnpersistedRelations(created.ID, input.MemberIDs, input.TechnologyIDs)

	out := dto.ToProjectResponse(*created)
	return &out, nil
}

// Update applies a partial update to a project, re-validating the date range
// against the stored values
func (s *ProjectService) Update(ctx context.Context, id uint64, input UpdateProjectInput) (resp *dto.ProjectResponse, err error) {
	defer func() { observe("project", "update", err) }()

	current, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "project")
	}
	if err := input.validate(current); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	if input.Name.Set {
		patch["name"] = strings.TrimSpace(*input.Name.Value)
	}
	putOptional(patch, "description", input.Description)
	putOptional(patch, "client_name", input.ClientName)
	putOptional(patch, "status", input.Status)
	putOptional(patch, "start_date", input.StartDate)
	putOptional(patch, "end_date", input.EndDate)
	putOptional(patch, "budget", input.Budget)
	putOptional(patch, "hourly_rate", input.HourlyRate)

	updated, err := s.projectRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "project")
	}

	var memberIDs, technologyIDs []uint64
	if input.MemberIDs.Value != nil {
		memberIDs = *input.MemberIDs.Value
	}
	if input.TechnologyIDs.Value != nil {
		technologyIDs = *input.TechnologyIDs.Value
	}
	s.warnUnpersistedRelations(id, memberIDs, technologyIDs)

	out := dto.ToProjectResponse(*updated)
	return &out, nil
}

// Delete removes a project together with its tasks, invoices and time entries
func (s *ProjectService) Delete(ctx context.Context, id uint64) (err error) {
	defer func() { observe("project", "delete", err) }()

	ok, err := s.projectRepo.Delete(ctx, id)
	return deleted(ok, err, ErrProjectNotFound, "project")
}

// TODO: write member_ids and technology_ids to project_members and
// project_technologies once membership roles are defined.
func (s *ProjectService) warnUnpersistedRelations(projectID uint64, memberIDs, technologyIDs []uint64) {
	if len(memberIDs) == 0 && len(technologyIDs) == 0 {
		return
	}
	s.log.Warn("project relations accepted but not persisted",
		slog.Uint64("project_id", projectID),
		slog.Any("member_ids", memberIDs),
		slog.Any("technology_ids", technologyIDs),
	)
}
