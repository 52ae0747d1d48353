package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quire/internal/database"
)

func newCreateAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the administrator account if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := database.Migrate(db); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				created, err := database.SeedAdmin(cmd.Context(), db, name, email, password)
				if errors.Is(err, database.ErrUserExists) {
					return fmt.Errorf("user already exists: name %q or email %q is taken", name, email)
				}
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created\n", email)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "an administrator already exists")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name of the administrator")
	cmd.Flags().StringVar(&email, "email", "", "login email of the administrator")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}
