package repository

import (
	"context"
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/gorm/clause"
)

// Filters maps field names to exact-match values. Nil values and names that
// are not fields of the entity are ignored.
type Filters map[string]any

// Patch maps field names to the values an update writes. Fields absent from
// the patch are left untouched; a nil value writes NULL.
type Patch map[string]any

// Query describes a filtered, searchable, ordered listing
type Query struct {
	Filters Filters

	// Term is matched case-insensitively as a substring of any SearchColumns
	Term          string
	SearchColumns []string

	Conditions []clause.Expression
	Order      []string
	Preloads   []string
}

// Repository is the data access contract shared by every entity.
// Lookups of a missing id return gorm.ErrRecordNotFound.
type Repository[T any] interface {
	// GetByID finds an entity by ID
	GetByID(ctx context.Context, id uint64) (*T, error)

	// GetAll lists entities matching filters, newest id first, with the
	// total match count before pagination
	GetAll(ctx context.Context, skip, limit int, filters Filters) ([]T, int64, error)

	// Create persists a new entity
	Create(ctx context.Context, entity *T) (*T, error)

	// Update applies a partial update and returns the refreshed entity
	Update(ctx context.Context, id uint64, patch Patch) (*T, error)

	// Delete removes an entity, reporting whether a row was removed
	Delete(ctx context.Context, id uint64) (bool, error)

	// Exists reports whether an entity with id exists
	Exists(ctx context.Context, id uint64) (bool, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Repository[models.User]

	// Search lists users matching filter
	Search(ctx context.Context, filter UserFilter, skip, limit int) ([]models.User, int64, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// ListActiveByRole lists active users holding role
	ListActiveByRole(ctx context.Context, role string) ([]models.User, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Search   string
	Role     *string
	IsActive *bool
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Repository[models.Project]

	// Search lists projects matching filter
	Search(ctx context.Context, filter ProjectFilter, skip, limit int) ([]models.Project, int64, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Search string
	Status *models.ProjectStatus
}

// TechnologyRepository defines the interface for technology data access
type TechnologyRepository interface {
	Repository[models.Technology]

	// Search lists technologies matching filter ordered by category then name
	Search(ctx context.Context, filter TechnologyFilter, skip, limit int) ([]models.Technology, int64, error)

	// FindByName finds a technology by its exact name
	FindByName(ctx context.Context, name string) (*models.Technology, error)

	// Categories lists the distinct non-null categories
	Categories(ctx context.Context) ([]string, error)

	// ListByCategory lists technologies in category ordered by name
	ListByCategory(ctx context.Context, category string) ([]models.Technology, error)
}

// TechnologyFilter holds filtering options for listing technologies
type TechnologyFilter struct {
	Search   string
	Category *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Repository[models.Task]

	// FindByIDWithRelations finds a task with its project, assignee and creator loaded
	FindByIDWithRelations(ctx context.Context, id uint64) (*models.Task, error)

	// Search lists tasks matching filter with relations loaded
	Search(ctx context.Context, filter TaskFilter, skip, limit int) ([]models.Task, int64, error)

	// ListOverdue lists unfinished tasks due before now
	ListOverdue(ctx context.Context, now time.Time) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Search     string
	ProjectID  *uint64
	AssigneeID *uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
}

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	Repository[models.Invoice]

	// FindByIDWithRelations finds an invoice with its project loaded
	FindByIDWithRelations(ctx context.Context, id uint64) (*models.Invoice, error)

	// Search lists invoices matching filter with the project loaded
	Search(ctx context.Context, filter InvoiceFilter, skip, limit int) ([]models.Invoice, int64, error)

	// FindByNumber finds an invoice by invoice number
	FindByNumber(ctx context.Context, number string) (*models.Invoice, error)

	// ListByProject lists every invoice of a project
	ListByProject(ctx context.Context, projectID uint64) ([]models.Invoice, error)

	// ListOverdue lists sent or overdue invoices due before now
	ListOverdue(ctx context.Context, now time.Time) ([]models.Invoice, error)
}

// InvoiceFilter holds filtering options for listing invoices
type InvoiceFilter struct {
	Search    string
	Status    *models.InvoiceStatus
	ProjectID *uint64
}

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	Repository[models.TimeEntry]

	// FindByIDWithRelations finds an entry with its user, project and task loaded
	FindByIDWithRelations(ctx context.Context, id uint64) (*models.TimeEntry, error)

	// Search lists entries matching filter, most recent date first
	Search(ctx context.Context, filter TimeEntryFilter, skip, limit int) ([]models.TimeEntry, int64, error)

	// ListUnbilled lists billable entries not yet billed, optionally for one user
	ListUnbilled(ctx context.Context, userID *uint64) ([]models.TimeEntry, error)

	// HoursSummary totals the hours logged against a project
	HoursSummary(ctx context.Context, projectID uint64) (HoursSummary, error)
}

// TimeEntryFilter holds filtering options for listing time entries
type TimeEntryFilter struct {
	UserID    *uint64
	ProjectID *uint64
	TaskID    *uint64
	Billable  *bool
	Billed    *bool
	StartDate *time.Time
	EndDate   *time.Time
}

// HoursSummary aggregates logged hours for a project
type HoursSummary struct {
	TotalHours    float64 `gorm:"column:total_hours"`
	BillableHours float64 `gorm:"column:billable_hours"`
}
