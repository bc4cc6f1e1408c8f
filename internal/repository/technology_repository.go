package repository

import (
	"context"

	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/gorm"
)

var technologySearchColumns = []string{"name", "description"}

// GormTechnologyRepository is a GORM implementation of TechnologyRepository
type GormTechnologyRepository struct {
	*GormRepository[models.Technology]
	db *gorm.DB
}

// NewTechnologyRepository creates a new TechnologyRepository
func NewTechnologyRepository(db *gorm.DB) TechnologyRepository {
	return &GormTechnologyRepository{
		GormRepository: NewGormRepository[models.Technology](db),
		db:             db,
	}
}

// Search lists technologies matching filter ordered by category then name
func (r *GormTechnologyRepository) Search(ctx context.Context, filter TechnologyFilter, skip, limit int) ([]models.Technology, int64, error) {
	return r.Find(ctx, Query{
		Filters:       Filters{"category": filter.Category},
		Term:          filter.Search,
		SearchColumns: technologySearchColumns,
		Order:         []string{"category ASC", "name ASC"},
	}, skip, limit)
}

// FindByName finds a technology by its exact name
func (r *GormTechnologyRepository) FindByName(ctx context.Context, name string) (*models.Technology, error) {
	return r.FindOneBy(ctx, "name", name)
}

// Categories lists the distinct non-null categories in alphabetical order
func (r *GormTechnologyRepository) Categories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Technology{}).
		Where("category IS NOT NULL").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByCategory lists technologies in category ordered by name
func (r *GormTechnologyRepository) ListByCategory(ctx context.Context, category string) ([]models.Technology, error) {
	return r.FindAll(ctx, Query{
		Filters: Filters{"category": category},
		Order:   []string{"name ASC"},
	})
}
