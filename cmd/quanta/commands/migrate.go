package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Clay-Ferguson/quanta-docs/internal/logger"
	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations for the nodes database.

SQLite databases are migrated automatically on startup; this command is
mainly for PostgreSQL deployments that run with auto_migrate disabled.

Examples:
  # Run migrations with default config
  quanta migrate

  # Run migrations with custom config
  quanta migrate --config /etc/quanta/config.yaml`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("Running database migrations", "type", string(cfg.Database.Type))

	ctx := context.Background()

	if cfg.Database.Type == store.DatabaseTypePostgres {
		log := logger.With(logger.KeyComponent, "migrate")
		if err := store.RunMigrations(ctx, cfg.Database.Postgres.DSN(), log); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		// SQLite migrates through GORM when the store opens.
		engine, err := store.New(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		defer func() { _ = engine.Close() }()

		// Verify the schema by running one query against the nodes table.
		if _, err := engine.MaxOrdinal(ctx, "", "migration-probe"); err != nil {
			return fmt.Errorf("migration verification failed: %w", err)
		}
	}

	fmt.Printf("Migrations completed successfully (database type: %s)\n", cfg.Database.Type)
	return nil
}
