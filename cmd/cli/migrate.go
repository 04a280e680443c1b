package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"slotsense/adapters/postgres/migrations"
	"slotsense/internal/errors"
)

func newMigrateCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL snapshot schema",
		Long: `Apply or inspect the embedded schema migrations against DATABASE_URL.

Example: DATABASE_URL=postgres://localhost/slotsense?sslmode=disable slotsense migrate up`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.connect()
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.NewMigrator(db).Up(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, version := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.connect()
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := migrations.NewMigrator(db).Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				mark := "pending"
				if s.Applied {
					mark = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", mark, s.Name)
			}
			return nil
		},
	})

	return cmd
}

func (a *cli) connect() (*sqlx.DB, error) {
	if a.cfg.Storage.DatabaseURL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	db, err := sqlx.Connect("postgres", a.cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}
