package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/hr_memo_app/internal/platform/config"
	"github.com/SscSPs/hr_memo_app/internal/platform/migrations"
	"github.com/spf13/cobra"
)

func migrateCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back database migrations",
		Long: `Apply every pending migration (up) or roll back the latest one (down).

Examples:
  hr_admin migrate up
  hr_admin migrate down`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(migrations.Up), string(migrations.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := migrations.Direction(args[0])
			if direction != migrations.Up && direction != migrations.Down {
				return fmt.Errorf("unknown direction %q (want up or down)", args[0])
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			source, _ := cmd.Flags().GetString("source")
			if source == "" {
				source = cfg.MigrationsPath
			}
			return migrations.Run(cfg.DatabaseURL, source, direction, logger)
		},
	}

	cmd.Flags().String("source", "", "migration source URL (defaults to MIGRATIONS_PATH)")
	return cmd
}
