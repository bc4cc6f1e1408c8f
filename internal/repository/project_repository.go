package repository

import (
	"context"

	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/gorm"
)

var projectSearchColumns = []string{"name", "client_name", "description"}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	*GormRepository[models.Project]
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{GormRepository: NewGormRepository[models.Project](db)}
}

// Search lists projects matching filter, newest first
func (r *GormProjectRepository) Search(ctx context.Context, filter ProjectFilter, skip, limit int) ([]models.Project, int64, error) {
	return r.Find(ctx, Query{
		Filters:       Filters{"status": filter.Status},
		Term:          filter.Search,
		SearchColumns: projectSearchColumns,
		Order:         []string{"created_at DESC", "id DESC"},
	}, skip, limit)
}
