package repository

import (
	"context"

	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var timeEntryPreloads = []string{"User", "Project", "Task"}

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	*GormRepository[models.TimeEntry]
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{
		GormRepository: NewGormRepository[models.TimeEntry](db),
		db:             db,
	}
}

// FindByIDWithRelations finds an entry with its user, project and task loaded
func (r *GormTimeEntryRepository) FindByIDWithRelations(ctx context.Context, id uint64) (*models.TimeEntry, error) {
	return r.FindByID(ctx, id, timeEntryPreloads...)
}

// Search lists entries matching filter, most recent date first
func (r *GormTimeEntryRepository) Search(ctx context.Context, filter TimeEntryFilter, skip, limit int) ([]models.TimeEntry, int64, error) {
	var conditions []clause.Expression
	if filter.StartDate != nil {
		conditions = append(conditions, clause.Gte{Column: clause.Column{Name: "date"}, Value: *filter.StartDate})
	}
	if filter.EndDate != nil {
		conditions = append(conditions, clause.Lte{Column: clause.Column{Name: "date"}, Value: *filter.EndDate})
	}

	return r.Find(ctx, Query{
		Filters: Filters{
			"user_id":    filter.UserID,
			"project_id": filter.ProjectID,
			"task_id":    filter.TaskID,
			"billable":   filter.Billable,
			"billed":     filter.Billed,
		},
		Conditions: conditions,
		Order:      []string{"date DESC", "id DESC"},
		Preloads:   timeEntryPreloads,
	}, skip, limit)
}

// ListUnbilled lists billable entries not yet billed, optionally for one user
func (r *GormTimeEntryRepository) ListUnbilled(ctx context.Context, userID *uint64) ([]models.TimeEntry, error) {
	return r.FindAll(ctx, Query{
		Filters: Filters{
			"billable": true,
			"billed":   false,
			"user_id":  userID,
		},
		Order:    []string{"date DESC", "id DESC"},
		Preloads: timeEntryPreloads,
	})
}

// HoursSummary totals the hours logged against a project
func (r *GormTimeEntryRepository) HoursSummary(ctx context.Context, projectID uint64) (HoursSummary, error) {
	var summary HoursSummary
	err := r.db.WithContext(ctx).
		Model(&models.TimeEntry{}).
		Select("COALESCE(SUM(hours), 0) AS total_hours, "+
			"COALESCE(SUM(CASE WHEN billable = ? THEN hours ELSE 0 END), 0) AS billable_hours", true).
		Where("project_id = ?", projectID).
		Scan(&summary).Error
	return summary, err
}
