package main

import (
	"fmt"

	"studentshub/internal/database/seeder"
	"studentshub/internal/repository"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo accounts and jobs",
		Long: "Insert a verified demo company, a demo student and a few open jobs.\n" +
			"Running it again leaves existing rows untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
			if err := runner.Run(cmd.Context(), repository.NewPostgresStore(db)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded; demo logins %s and %s (password %q)\n",
				seeder.DemoCompanyEmail, seeder.DemoStudentEmail, seeder.DemoPassword)
			return nil
		},
	}
}
