package services

import (
	"context"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// SettingsSvcFacade manages per-tenant tax settings and account mappings.
type SettingsSvcFacade interface {
	// GetTaxSettings returns the tenant override for year, or the built-in settings.
	GetTaxSettings(ctx context.Context, tenantID string, year int) (*domain.TaxSettings, error)
	SaveTaxSettings(ctx context.Context, tenantID string, settings domain.TaxSettings, actorID string) error

	// GetAccountMappings returns overrides merged over the default chart codes.
	// Keys whose account cannot be found are left empty.
	GetAccountMappings(ctx context.Context, tenantID string) (map[string]string, error)
	SetAccountMapping(ctx context.Context, tenantID, key, accountID, actorID string) error
}

// PayrollSvcFacade computes payroll and posts it to the journal.
type PayrollSvcFacade interface {
	Calculate(ctx context.Context, tenantID string, year int, pay domain.EmployeePay) (*domain.PayrollCalculation, error)

	// PostPayroll posts one entry with the summed lines of every employee in the run.
	PostPayroll(ctx context.Context, run domain.PayrollRun) (*domain.PayrollPosting, error)
}
