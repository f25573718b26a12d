package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/SscSPs/kz_bookkeeping/internal/core/services"
	"github.com/SscSPs/kz_bookkeeping/internal/handlers"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
	"github.com/SscSPs/kz_bookkeeping/internal/platform/config"
	"github.com/SscSPs/kz_bookkeeping/internal/repositories/database/pgsql"
	"github.com/SscSPs/kz_bookkeeping/pkg/database"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, newLogger(), !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, applyMigrations bool) error {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if applyMigrations {
		if err := runMigrations(cfg, logger, func(m *migrate.Migrate) error { return m.Up() }); err != nil {
			return err
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool))
	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
