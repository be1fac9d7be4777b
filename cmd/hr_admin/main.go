// Command hr_admin runs operator tasks against the HR memo database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	"github.com/SscSPs/hr_memo_app/internal/platform/config"
	"github.com/SscSPs/hr_memo_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/hr_memo_app/pkg/database"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:           "hr_admin",
		Short:         "Operator tasks for the HR memo backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd(logger))
	rootCmd.AddCommand(employeeCmd())
	rootCmd.AddCommand(queueCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openRepositories loads the configuration and connects to Postgres.
// The returned func closes the pool.
func openRepositories(ctx context.Context) (*config.Config, portsrepo.RepositoryProvider, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, portsrepo.RepositoryProvider{}, nil, err
	}
	if cfg.StorageDriver != config.StorageDriverPostgres {
		return nil, portsrepo.RepositoryProvider{}, nil, fmt.Errorf("hr_admin needs STORAGE_DRIVER=%s", config.StorageDriverPostgres)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.DefaultConnectTimeout)
	if err != nil {
		return nil, portsrepo.RepositoryProvider{}, nil, err
	}
	return cfg, pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
}
