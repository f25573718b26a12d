package services

import (
	"context"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// PeriodGateSvc is the posting gate every journal write passes through.
type PeriodGateSvc interface {
	// FindPeriodForDate returns the covering period or a PeriodError of kind NOT_FOUND.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.Period, error)

	// ValidateForPosting returns the ID of the open period covering date.
	ValidateForPosting(ctx context.Context, tenantID string, date time.Time) (string, error)
}

// PeriodLifecycleSvc creates periods and moves them through their statuses.
type PeriodLifecycleSvc interface {
	CreatePeriod(ctx context.Context, tenantID, name string, start, end time.Time, actorID string) (*domain.Period, error)

	// InitializeFiscalYear creates twelve monthly periods and opens the one starting in openMonth.
	InitializeFiscalYear(ctx context.Context, tenantID string, year int, openMonth time.Month, actorID string) ([]domain.Period, error)

	OpenPeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error)
	SoftClosePeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error)
	HardClosePeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error)
}

// PeriodReaderSvc reads periods.
type PeriodReaderSvc interface {
	GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.Period, error)
	ListPeriods(ctx context.Context, tenantID string) ([]domain.Period, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodGateSvc
	PeriodLifecycleSvc
	PeriodReaderSvc
}
