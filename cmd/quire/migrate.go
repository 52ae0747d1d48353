package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"quire/internal/config"
	"quire/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", database.Migrate),
		migrateSubcommand("down", "Roll back the most recent migration", database.MigrateDown),
		migrateSubcommand("status", "Print the state of every migration", database.MigrateStatus),
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(*sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := run(db); err != nil {
					return fmt.Errorf("migrate %s: %w", use, err)
				}
				return nil
			})
		},
	}
}

// withDB loads configuration, connects to PostgreSQL and calls fn.
func withDB(fn func(db *sql.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
