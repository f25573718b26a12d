package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// PeriodPlanner computes period rows to write from the tenant's current periods.
// It runs while the tenant's period rows are locked.
type PeriodPlanner func(current []domain.Period) ([]domain.Period, error)

// PeriodReader defines read operations for accounting periods
type PeriodReader interface {
	// FindPeriodByID retrieves a period of a tenant.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.Period, error)

	// FindPeriodForDate returns the period whose inclusive range covers date,
	// or apperrors.ErrNotFound.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.Period, error)

	// ListPeriods returns the tenant's periods ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.Period, error)
}

// PeriodWriter defines write operations for accounting periods
type PeriodWriter interface {
	// CreatePeriods locks the tenant's periods, asks plan for new periods and
	// inserts them in the same transaction. Planned rows that already exist get
	// their status updated instead, so a plan may open a new period and close
	// the previously open one.
	CreatePeriods(ctx context.Context, tenantID string, plan PeriodPlanner) ([]domain.Period, error)

	// TransitionPeriods locks the tenant's periods FOR UPDATE, asks plan for the
	// changed rows and applies every change atomically.
	TransitionPeriods(ctx context.Context, tenantID string, plan PeriodPlanner) ([]domain.Period, error)
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
