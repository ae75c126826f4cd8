package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notepad/pkg/db/postgres"
)

const (
	ErrResolveMigrations = "failed to resolve migrations source"
	ErrRunMigrations     = "failed to run migrations"
	LogMigrationsDone    = "migrations finished"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, log, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		source, err := postgres.SourceURL(cfg.Postgres.MigrationsPath)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrResolveMigrations, err)
		}

		version, err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), source)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrRunMigrations, err)
		}

		log.Info(ctx, LogMigrationsDone, zap.Uint("version", version))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
