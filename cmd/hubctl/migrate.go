package main

import (
	"fmt"

	"studentshub/internal/app"
	"studentshub/internal/database/migration"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			runner := migration.Runner{Source: app.MigrationSource(cfg.MigrationsDir), Logger: logger}
			n, err := runner.Run(cmd.Context(), db.SQLDB())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			runner := migration.Runner{Source: app.MigrationSource(cfg.MigrationsDir)}
			statuses, err := runner.Status(cmd.Context(), db.SQLDB())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied " + s.AppliedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(out, "V%-4d %-32s %s\n", s.Version, s.Name, state)
			}
			return nil
		},
	})

	return cmd
}
