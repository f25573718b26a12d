package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/payroll"
)

type payrollService struct {
	BaseService
	settings portssvc.SettingsSvcFacade
	journal  portssvc.JournalWriterSvc
}

// NewPayrollService creates the payroll service. Postings go through the journal engine.
func NewPayrollService(settings portssvc.SettingsSvcFacade, journal portssvc.JournalWriterSvc) portssvc.PayrollSvcFacade {
	return &payrollService{settings: settings, journal: journal}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func (s *payrollService) calculate(pay domain.EmployeePay, settings domain.TaxSettings) (domain.PayrollCalculation, error) {
	if !pay.Gross.IsPositive() {
		return domain.PayrollCalculation{}, fmt.Errorf("%w: gross pay of %s must be positive", apperrors.ErrValidation, pay.EmployeeID)
	}
	return payroll.Calculate(payroll.CalculationInput{
		Gross:         pay.Gross,
		IsResident:    pay.IsResident,
		Flags:         pay.Flags,
		Settings:      settings,
		WorkedDays:    pay.WorkedDays,
		TotalWorkDays: pay.TotalWorkDays,
	})
}

func (s *payrollService) Calculate(ctx context.Context, tenantID string, year int, pay domain.EmployeePay) (*domain.PayrollCalculation, error) {
	if err := validateStruct(pay); err != nil {
		return nil, err
	}
	settings, err := s.settings.GetTaxSettings(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}
	calc, err := s.calculate(pay, *settings)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Payroll calculated", slog.String("employee_id", pay.EmployeeID), slog.Int("year", year))
	return &calc, nil
}

// PostPayroll calculates every employee, sums the results and posts them as one entry.
func (s *payrollService) PostPayroll(ctx context.Context, run domain.PayrollRun) (*domain.PayrollPosting, error) {
	if err := validateStruct(run); err != nil {
		return nil, err
	}
	settings, err := s.settings.GetTaxSettings(ctx, run.TenantID, run.PayDate.Year())
	if err != nil {
		return nil, err
	}

	calcs := make(map[string]domain.PayrollCalculation, len(run.Employees))
	var total domain.PayrollCalculation
	for _, pay := range run.Employees {
		if _, dup := calcs[pay.EmployeeID]; dup {
			return nil, fmt.Errorf("%w: employee %s listed twice", apperrors.ErrValidation, pay.EmployeeID)
		}
		calc, err := s.calculate(pay, *settings)
		if err != nil {
			return nil, err
		}
		calcs[pay.EmployeeID] = calc
		total = total.Add(calc)
	}

	mappings, err := s.settings.GetAccountMappings(ctx, run.TenantID)
	if err != nil {
		return nil, err
	}
	lines, err := payroll.GeneratePayrollJournalLines(total, domain.PayrollAccountMappings(mappings))
	if err != nil {
		var cfgErr *apperrors.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.TenantID = run.TenantID
		}
		s.LogError(ctx, err, "Failed to build payroll lines", slog.String("tenant_id", run.TenantID))
		return nil, err
	}

	description := run.Description
	if description == "" {
		description = "Payroll " + run.PayDate.Format("2006-01")
	}
	entry, err := s.journal.PostLines(ctx, domain.LineBatch{
		TenantID:    run.TenantID,
		Date:        run.PayDate,
		Description: description,
		Source:      domain.SourcePayroll,
		Lines:       lines,
		ActorID:     run.ActorID,
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payroll posted",
		slog.String("tenant_id", run.TenantID),
		slog.String("entry_id", entry.EntryID),
		slog.Int("employee_count", len(run.Employees)))
	return &domain.PayrollPosting{Entry: entry, Calculations: calcs, Total: total}, nil
}
