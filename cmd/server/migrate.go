package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/yukikurage/lynxview-api/internal/database"
	"github.com/yukikurage/lynxview-api/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		logger.Get().Info("migrations applied", slog.String("driver", cfg.DBDriver))
		return nil
	},
}
