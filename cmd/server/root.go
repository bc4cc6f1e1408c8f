package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/lynxview-api/internal/config"
	"github.com/yukikurage/lynxview-api/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "lynxview-api",
	Short: "LynxView - project, time and invoice tracking API",
	Long: `lynxview-api serves the LynxView REST API for users, projects,
technologies, tasks, invoices and time entries.
Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Running the binary without a subcommand serves the API
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// setup loads configuration and initializes the global logger
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	return cfg, nil
}
