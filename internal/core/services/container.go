package services

import (
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/platform/config"
)

// NewServiceContainer creates a new service container with all services initialized.
// Services depend on each other only through the ports interfaces.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	chart := NewChartService(repos.AccountRepo, WithAccountCacheTTL(cfg.AccountCacheTTL))
	periods := NewPeriodService(repos.PeriodRepo, WithFiscalYearStartMonth(cfg.FiscalYearStartMonth))
	settings := NewSettingsService(repos.SettingsRepo, chart, WithOtherIncomeCode(cfg.DefaultOtherIncomeCode))

	journalOptions := []JournalServiceOption{
		WithAccountMappings(settings),
		WithDefaultOtherIncomeCode(cfg.DefaultOtherIncomeCode),
	}
	if repos.InvoiceReader != nil {
		journalOptions = append(journalOptions, WithInvoiceReader(repos.InvoiceReader))
	}
	journal := NewJournalService(repos.JournalRepo, chart, periods, journalOptions...)

	reporting := NewReportingService(repos.ReportingRepo, repos.AccountRepo, WithReportingFiscalYearStart(cfg.FiscalYearStartMonth))
	payrollSvc := NewPayrollService(settings, journal)

	return &portssvc.ServiceContainer{
		Chart:     chart,
		Period:    periods,
		Journal:   journal,
		Reporting: reporting,
		Settings:  settings,
		Payroll:   payrollSvc,
	}
}
