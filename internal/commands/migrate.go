package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/SscSPs/kz_bookkeeping/internal/platform/config"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return runMigrations(cfg, newLogger(), func(m *migrate.Migrate) error { return m.Up() })
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the given number of migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return runMigrations(cfg, newLogger(), func(m *migrate.Migrate) error { return m.Steps(-steps) })
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

// runMigrations opens a database/sql connection through the pgx stdlib
// driver, runs apply and reports dirty state.
func runMigrations(cfg *config.Config, logger *slog.Logger, apply func(*migrate.Migrate) error) error {
	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	applyErr := apply(m)
	if applyErr != nil && !errors.Is(applyErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", applyErr)
	}

	if version, dirty, verr := m.Version(); verr == nil {
		logger.Info("Migration state", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		if dirty {
			return fmt.Errorf("database is dirty at migration version %d", version)
		}
	}

	if errors.Is(applyErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
