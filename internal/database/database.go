package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yukikurage/lynxview-api/internal/config"
	applogger "github.com/yukikurage/lynxview-api/internal/logger"
	"github.com/yukikurage/lynxview-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a connection pool for the configured driver
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.GinMode == "debug" {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	applogger.Get().Info("database connection established", slog.String("driver", cfg.DBDriver))
	return db, nil
}

// Dialector selects the GORM dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// NewLogger routes GORM's SQL logging through slog
func NewLogger(level logger.LogLevel) logger.Interface {
	writer := slog.NewLogLogger(applogger.Get().Handler(), slog.LevelInfo)
	return logger.New(writer, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Migrate creates or updates the schema and its secondary indexes
func Migrate(db *gorm.DB) error {
	log := applogger.Get()
	log.Info("running database migrations")

	if err := db.SetupJoinTable(&models.Project{}, "Members", &models.ProjectMember{}); err != nil {
		return fmt.Errorf("failed to set up project_members: %w", err)
	}
	if err := db.SetupJoinTable(&models.Project{}, "Technologies", &models.ProjectTechnology{}); err != nil {
		return fmt.Errorf("failed to set up project_technologies: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Technology{},
		&models.Project{},
		&models.Task{},
		&models.Invoice{},
		&models.TimeEntry{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}
