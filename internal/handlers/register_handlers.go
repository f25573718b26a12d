package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/middleware"
	"github.com/SscSPs/kz_bookkeeping/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the tenant-scoped /api/v1 group and delegates
// to the route registrations of each area.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}
	rateLimiter := limiter.New(memory.NewStore(), rate)
	slog.Info("Rate limiting enabled", slog.Int64("limit", rate.Limit), slog.Duration("period", rate.Period))

	// Auth runs first so that the limiter keys on the user.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.RateLimit(rateLimiter))
	tenant := v1.Group("/tenants/:tenant_id")

	RegisterAccountRoutes(tenant, services.Chart, services.Reporting)
	RegisterPeriodRoutes(tenant, services.Period)
	RegisterJournalRoutes(tenant, services.Journal)
	RegisterReportingRoutes(tenant, services.Reporting, cfg.ReportRequestTimeout)
	RegisterPayrollRoutes(tenant, services.Payroll, services.Settings)
	return nil
}
