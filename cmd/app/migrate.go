package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/todo-list/internal/config"
	"github.com/BuzzLyutic/todo-list/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}
	for _, sub := range []struct {
		name  database.MigrateCommand
		short string
	}{
		{database.MigrateUp, "Apply all pending migrations"},
		{database.MigrateDown, "Roll back the latest migration"},
		{database.MigrateStatus, "Print the migration status"},
	} {
		name := sub.name
		cmd.AddCommand(&cobra.Command{
			Use:   string(name),
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), name)
			},
		})
	}
	return cmd
}

func runMigrate(ctx context.Context, command database.MigrateCommand) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations only apply to the %s driver", config.DriverPostgres)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pool, err := database.Connect(ctx, poolConfig(cfg))
	if err != nil {
		return err
	}
	defer pool.Close()

	return database.Migrate(ctx, pool, logger, command)
}
