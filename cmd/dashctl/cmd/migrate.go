package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"blogcanvas/internal/infrastructure/migration"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mg, err := migration.FromConfig(a.cfg, migration.DefaultEngine)
			if err != nil {
				return err
			}
			if err := mg.Up(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s schema is up to date (%s)\n", okMark("OK"), a.cfg.Storage.Driver, a.cfg.Storage.MigrationsDir())
			return nil
		},
	})
	return cmd
}
