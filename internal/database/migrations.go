package database

import (
	"fmt"
	"log/slog"

	applogger "github.com/yukikurage/lynxview-api/internal/logger"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// secondaryIndexes back the default list orderings and the composite filters
// that struct tags do not cover
var secondaryIndexes = []index{
	{"users", "idx_users_created_at", "created_at"},
	{"projects", "idx_projects_created_at", "created_at"},
	{"projects", "idx_projects_status", "status"},
	{"technologies", "idx_technologies_category_name", "category, name"},
	{"tasks", "idx_tasks_created_at", "created_at"},
	{"tasks", "idx_tasks_priority", "priority"},
	{"invoices", "idx_invoices_created_at", "created_at"},
	{"time_entries", "idx_time_entries_billing", "billable, billed"},
}

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	log := applogger.Get()
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index",
			slog.String("index", idx.name),
			slog.String("table", idx.table),
			slog.String("columns", idx.columns),
		)
	}

	return nil
}
