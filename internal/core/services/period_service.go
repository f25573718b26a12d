package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
)

type periodService struct {
	BaseService
	periodRepo           portsrepo.PeriodRepositoryFacade
	fiscalYearStartMonth time.Month
	now                  func() time.Time
}

// PeriodServiceOption is a functional option for configuring the period service
type PeriodServiceOption func(*periodService)

// WithFiscalYearStartMonth sets the first month of the fiscal year.
func WithFiscalYearStartMonth(month time.Month) PeriodServiceOption {
	return func(s *periodService) {
		if month >= time.January && month <= time.December {
			s.fiscalYearStartMonth = month
		}
	}
}

// WithPeriodClock overrides the clock used for closedAt and audit fields.
func WithPeriodClock(now func() time.Time) PeriodServiceOption {
	return func(s *periodService) {
		s.now = now
	}
}

// NewPeriodService creates the period ledger service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, options ...PeriodServiceOption) portssvc.PeriodSvcFacade {
	svc := &periodService{
		periodRepo:           periodRepo,
		fiscalYearStartMonth: time.January,
		now:                  func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, tenantID, domain.DateOnly(date))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewPeriodNotFoundError(tenantID, date.Format(time.DateOnly))
		}
		s.LogError(ctx, err, "Failed to look up period", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to look up period: %w", err)
	}
	return period, nil
}

// ValidateForPosting is the only way posting paths obtain a period ID.
func (s *periodService) ValidateForPosting(ctx context.Context, tenantID string, date time.Time) (string, error) {
	period, err := s.FindPeriodForDate(ctx, tenantID, date)
	if err != nil {
		return "", err
	}
	if !period.CanWrite() {
		s.LogDebug(ctx, "Posting rejected by period status",
			slog.String("period_id", period.PeriodID),
			slog.String("status", string(period.Status)))
		return "", apperrors.NewPeriodClosedError(tenantID, period.PeriodID, string(period.Status))
	}
	return period.PeriodID, nil
}

func (s *periodService) newPeriod(tenantID, name string, start, end time.Time, actorID string) domain.Period {
	now := s.now()
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if name == "" {
		name = start.Format("2006-01")
	}
	return domain.Period{
		PeriodID:    uuid.NewString(),
		TenantID:    tenantID,
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		Status:      domain.PeriodSoftClosed,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
}

func (s *periodService) CreatePeriod(ctx context.Context, tenantID, name string, start, end time.Time, actorID string) (*domain.Period, error) {
	candidate := s.newPeriod(tenantID, name, start, end, actorID)

	created, err := s.periodRepo.CreatePeriods(ctx, tenantID, func(existing []domain.Period) ([]domain.Period, error) {
		if err := domain.ValidateNewPeriod(existing, candidate); err != nil {
			return nil, err
		}
		return []domain.Period{candidate}, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create period", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if len(created) != 1 {
		return nil, fmt.Errorf("%w: expected one created period, got %d", apperrors.ErrInternal, len(created))
	}

	s.LogInfo(ctx, "Period created", slog.String("period_id", created[0].PeriodID), slog.String("name", created[0].Name))
	return &created[0], nil
}

// InitializeFiscalYear creates the twelve periods of a fiscal year and opens
// the one starting in openMonth in the same transaction. A zero openMonth
// leaves them all closed.
func (s *periodService) InitializeFiscalYear(ctx context.Context, tenantID string, year int, openMonth time.Month, actorID string) ([]domain.Period, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: fiscal year %d out of range", apperrors.ErrValidation, year)
	}
	if openMonth < 0 || openMonth > time.December {
		return nil, fmt.Errorf("%w: month %d out of range", apperrors.ErrValidation, openMonth)
	}

	templates := domain.BuildFiscalYearPeriods(tenantID, year, s.fiscalYearStartMonth)
	periods := make([]domain.Period, 0, len(templates))
	isNew := make(map[string]bool, len(templates))
	for _, t := range templates {
		p := s.newPeriod(tenantID, t.Name, t.StartDate, t.EndDate, actorID)
		periods = append(periods, p)
		isNew[p.PeriodID] = true
	}
	at := s.now()

	written, err := s.periodRepo.CreatePeriods(ctx, tenantID, func(existing []domain.Period) ([]domain.Period, error) {
		all := append([]domain.Period(nil), existing...)
		for _, p := range periods {
			if err := domain.ValidateNewPeriod(all, p); err != nil {
				return nil, err
			}
			all = append(all, p)
		}
		if openMonth == 0 {
			return periods, nil
		}
		return planFiscalYearOpen(all, periods, openMonth, actorID, at)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to initialize fiscal year", slog.String("tenant_id", tenantID), slog.Int("year", year))
		return nil, err
	}

	created := make([]domain.Period, 0, len(periods))
	for _, p := range written {
		if isNew[p.PeriodID] {
			created = append(created, p)
		}
	}

	s.LogInfo(ctx, "Fiscal year initialized", slog.String("tenant_id", tenantID), slog.Int("year", year), slog.Int("period_count", len(created)))
	return created, nil
}

// planFiscalYearOpen returns the new periods with the one starting in
// openMonth opened, plus any existing period the open soft-closes.
func planFiscalYearOpen(all, periods []domain.Period, openMonth time.Month, actorID string, at time.Time) ([]domain.Period, error) {
	targetID := ""
	for _, p := range periods {
		if p.StartDate.Month() == openMonth {
			targetID = p.PeriodID
			break
		}
	}
	if targetID == "" {
		return periods, nil
	}

	changes, err := domain.PlanPeriodTransition(all, targetID, domain.PeriodOpen, actorID, at)
	if err != nil {
		return nil, err
	}
	planned := append([]domain.Period(nil), periods...)
	for _, c := range changes {
		replaced := false
		for i := range planned {
			if planned[i].PeriodID == c.PeriodID {
				planned[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			planned = append(planned, c)
		}
	}
	return planned, nil
}

func (s *periodService) OpenPeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error) {
	return s.transition(ctx, tenantID, periodID, domain.PeriodOpen, actorID)
}

func (s *periodService) SoftClosePeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error) {
	return s.transition(ctx, tenantID, periodID, domain.PeriodSoftClosed, actorID)
}

func (s *periodService) HardClosePeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error) {
	return s.transition(ctx, tenantID, periodID, domain.PeriodHardClosed, actorID)
}

func (s *periodService) transition(ctx context.Context, tenantID, periodID string, to domain.PeriodStatus, actorID string) (*domain.Period, error) {
	at := s.now()
	changed, err := s.periodRepo.TransitionPeriods(ctx, tenantID, func(current []domain.Period) ([]domain.Period, error) {
		return domain.PlanPeriodTransition(current, periodID, to, actorID, at)
	})
	if err != nil {
		s.LogError(ctx, err, "Period transition failed",
			slog.String("period_id", periodID),
			slog.String("target_status", string(to)))
		return nil, err
	}

	for i := range changed {
		if changed[i].PeriodID == periodID {
			s.LogInfo(ctx, "Period status changed",
				slog.String("period_id", periodID),
				slog.String("status", string(to)),
				slog.Int("changed_count", len(changed)))
			return &changed[i], nil
		}
	}
	// Already in the requested status.
	return s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
}

func (s *periodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.Period, error) {
	return s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
}

func (s *periodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.Period, error) {
	return s.periodRepo.ListPeriods(ctx, tenantID)
}
