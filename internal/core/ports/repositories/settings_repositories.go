package repositories

import (
	"context"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// SettingsReader reads per-tenant overrides.
type SettingsReader interface {
	// FindTaxSettings returns the tenant's override for a year, or apperrors.ErrNotFound.
	FindTaxSettings(ctx context.Context, tenantID string, year int) (*domain.TaxSettings, error)

	// FindAccountMappings returns mapping key to account ID for the tenant.
	FindAccountMappings(ctx context.Context, tenantID string) (map[string]string, error)
}

// SettingsWriter stores per-tenant overrides.
type SettingsWriter interface {
	SaveTaxSettings(ctx context.Context, tenantID string, settings domain.TaxSettings, userID string) error
	SaveAccountMapping(ctx context.Context, tenantID, key, accountID, userID string) error
}

// SettingsRepositoryFacade combines settings repository interfaces
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}

// InvoiceReader resolves invoice data owned by the invoicing module.
type InvoiceReader interface {
	// FindInvoiceRevenueAccount returns the revenue account mapped on an invoice,
	// or apperrors.ErrNotFound when the invoice does not exist.
	FindInvoiceRevenueAccount(ctx context.Context, tenantID, invoiceID string) (string, error)
}
