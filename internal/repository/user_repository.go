package repository

import (
	"context"

	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/gorm"
)

var userSearchColumns = []string{"full_name", "email", "username"}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	*GormRepository[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{GormRepository: NewGormRepository[models.User](db)}
}

// Search lists users matching filter, newest first
func (r *GormUserRepository) Search(ctx context.Context, filter UserFilter, skip, limit int) ([]models.User, int64, error) {
	return r.Find(ctx, Query{
		Filters: Filters{
			"role":      filter.Role,
			"is_active": filter.IsActive,
		},
		Term:          filter.Search,
		SearchColumns: userSearchColumns,
		Order:         []string{"created_at DESC", "id DESC"},
	}, skip, limit)
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOneBy(ctx, "email", email)
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.FindOneBy(ctx, "username", username)
}

// ListActiveByRole lists active users holding role
func (r *GormUserRepository) ListActiveByRole(ctx context.Context, role string) ([]models.User, error) {
	return r.FindAll(ctx, Query{
		Filters: Filters{"role": role, "is_active": true},
		Order:   []string{"username ASC"},
	})
}
