package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/lynxview-api/internal/database"
	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a migrated in-memory SQLite database private to t.
// Each call gets its own named shared-cache database so parallel tests do not collide.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user with a unique email and username
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:          username + "@example.com",
		Username:       username,
		HashedPassword: "hashedpassword",
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject inserts a project in the planning state
func CreateProject(t *testing.T, db *gorm.DB, name string) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:   name,
		Status: models.ProjectStatusPlanning,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTask inserts a pending task in project created by creatorID
func CreateTask(t *testing.T, db *gorm.DB, title string, projectID, creatorID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Status:      models.TaskStatusPending,
		Priority:    models.TaskPriorityMedium,
		ProjectID:   projectID,
		CreatedByID: creatorID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// CreateTimeEntry inserts a billable, unbilled entry
func CreateTimeEntry(t *testing.T, db *gorm.DB, userID, projectID uint64, hours float64, date time.Time) *models.TimeEntry {
	t.Helper()

	entry := &models.TimeEntry{
		Hours:     hours,
		Date:      date,
		UserID:    userID,
		ProjectID: projectID,
		Billable:  true,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}
