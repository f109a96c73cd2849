package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"libraryhub/pkg/db/postgres"
)

func newMigrateCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or revert database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			dir := postgres.Direction(args[0])
			if dir == postgres.Down && steps == 0 {
				steps = 1
			}
			if err := postgres.Migrate(ctx, cfg.Postgres.GetDSN(), migrationsSource(cfg.Postgres.MigrationsPath), dir, steps); err != nil {
				return fmt.Errorf("%s: %w", ErrMigrate, err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply, 0 means all (down defaults to 1)")
	return cmd
}
