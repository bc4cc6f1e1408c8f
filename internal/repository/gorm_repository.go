package repository

import (
	"context"
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/yukikurage/lynxview-api/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// GormRepository is a GORM implementation of Repository for any model type
type GormRepository[T any] struct {
	db *gorm.DB
}

// NewGormRepository creates a new generic repository
func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

// GetByID finds an entity by ID
func (r *GormRepository[T]) GetByID(ctx context.Context, id uint64) (*T, error) {
	return r.FindByID(ctx, id)
}

// FindByID finds an entity by ID with optional preloading
func (r *GormRepository[T]) FindByID(ctx context.Context, id uint64, preload ...string) (*T, error) {
	var entity T
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&entity, id).Error; err != nil {
		return nil, err
	}

	return &entity, nil
}

// GetAll lists entities matching filters ordered by id descending
func (r *GormRepository[T]) GetAll(ctx context.Context, skip, limit int, filters Filters) ([]T, int64, error) {
	return r.Find(ctx, Query{Filters: filters, Order: []string{"id DESC"}}, skip, limit)
}

// Find runs q and returns one page of results plus the total match count
func (r *GormRepository[T]) Find(ctx context.Context, q Query, skip, limit int) ([]T, int64, error) {
	query, err := r.where(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]T, 0)
	if total == 0 || skip >= int(total) {
		return items, total, nil
	}

	listQuery := r.ordered(query, q)
	if err := listQuery.Scopes(database.Paginate(skip, limit)).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// FindAll runs q without pagination
func (r *GormRepository[T]) FindAll(ctx context.Context, q Query) ([]T, error) {
	query, err := r.where(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0)
	if err := r.ordered(query, q).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOneBy finds the first entity whose column equals value
func (r *GormRepository[T]) FindOneBy(ctx context.Context, column string, value any) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Create persists a new entity
func (r *GormRepository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Update applies patch to the entity with id and returns the refreshed entity.
// Unknown fields and the primary key are ignored; updated_at is stamped.
func (r *GormRepository[T]) Update(ctx context.Context, id uint64, patch Patch) (*T, error) {
	entity, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sch, err := r.schema()
	if err != nil {
		return nil, err
	}

	columns := make(map[string]any, len(patch)+1)
	for name, value := range patch {
		field := sch.LookUpField(name)
		if field == nil || field.DBName == "" || field.PrimaryKey {
			continue
		}
		columns[field.DBName] = value
	}
	if field := sch.LookUpField("updated_at"); field != nil {
		columns[field.DBName] = time.Now()
	}

	if err := r.db.WithContext(ctx).Model(entity).Updates(columns).Error; err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// Delete removes the entity with id
func (r *GormRepository[T]) Delete(ctx context.Context, id uint64) (bool, error) {
	var entity T
	result := r.db.WithContext(ctx).Delete(&entity, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether an entity with id exists
func (r *GormRepository[T]) Exists(ctx context.Context, id uint64) (bool, error) {
	var entity T
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// where builds the reusable filtered query shared by count and list
func (r *GormRepository[T]) where(ctx context.Context, q Query) (*gorm.DB, error) {
	sch, err := r.schema()
	if err != nil {
		return nil, err
	}

	var model T
	query := r.db.WithContext(ctx).Model(&model)

	// Sorted so the generated SQL is stable
	for _, name := range slices.Sorted(maps.Keys(q.Filters)) {
		value, ok := deref(q.Filters[name])
		if !ok {
			continue
		}
		field := sch.LookUpField(name)
		if field == nil || field.DBName == "" {
			continue
		}
		query = query.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: field.DBName},
			Value:  value,
		})
	}

	for _, cond := range q.Conditions {
		query = query.Where(cond)
	}

	query = query.Scopes(database.Search(q.Term, q.SearchColumns...))

	return query.Session(&gorm.Session{}), nil
}

func (r *GormRepository[T]) ordered(query *gorm.DB, q Query) *gorm.DB {
	for _, order := range q.Order {
		query = query.Order(order)
	}
	for _, p := range q.Preloads {
		query = query.Preload(p)
	}
	return query
}

func (r *GormRepository[T]) schema() (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, err
	}
	return stmt.Schema, nil
}

// deref unwraps pointer filter values, reporting false for nil
func deref(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	return v.Interface(), true
}
