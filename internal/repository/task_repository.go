package repository

import (
	"context"
	"time"

	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	taskSearchColumns = []string{"title", "description"}
	taskPreloads      = []string{"Project", "Assignee", "CreatedBy"}
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	*GormRepository[models.Task]
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{GormRepository: NewGormRepository[models.Task](db)}
}

// FindByIDWithRelations finds a task with its project, assignee and creator loaded
func (r *GormTaskRepository) FindByIDWithRelations(ctx context.Context, id uint64) (*models.Task, error) {
	return r.FindByID(ctx, id, taskPreloads...)
}

// Search lists tasks matching filter, newest first
func (r *GormTaskRepository) Search(ctx context.Context, filter TaskFilter, skip, limit int) ([]models.Task, int64, error) {
	return r.Find(ctx, Query{
		Filters: Filters{
			"project_id":  filter.ProjectID,
			"assignee_id": filter.AssigneeID,
			"status":      filter.Status,
			"priority":    filter.Priority,
		},
		Term:          filter.Search,
		SearchColumns: taskSearchColumns,
		Order:         []string{"created_at DESC", "id DESC"},
		Preloads:      taskPreloads,
	}, skip, limit)
}

// ListOverdue lists tasks due before now that are not completed
func (r *GormTaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]models.Task, error) {
	return r.FindAll(ctx, Query{
		Conditions: []clause.Expression{
			clause.Lt{Column: clause.Column{Name: "due_date"}, Value: now},
			clause.Neq{Column: clause.Column{Name: "status"}, Value: models.TaskStatusCompleted},
		},
		Order:    []string{"due_date ASC", "id ASC"},
		Preloads: taskPreloads,
	})
}
