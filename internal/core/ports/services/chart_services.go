package services

import (
	"context"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// AccountResolverSvc resolves accounts referenced by posting paths.
type AccountResolverSvc interface {
	// Resolve returns the account with the chart code, or a ConfigurationError.
	Resolve(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// ResolveByID returns the account with the ID, or apperrors.ErrNotFound.
	ResolveByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// ResolveMany returns every requested account or fails on the first unknown ID.
	ResolveMany(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
}

// ChartAdminSvc manages the chart of accounts.
type ChartAdminSvc interface {
	CreateAccount(ctx context.Context, account domain.Account, actorID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID, accountID string, update domain.AccountUpdate, actorID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, tenantID, accountID, actorID string) error
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// SeedChartFromTemplate creates the built-in chart for a tenant with no accounts.
	SeedChartFromTemplate(ctx context.Context, tenantID, actorID string) ([]domain.Account, error)
}

// ChartSvcFacade combines all chart-related service interfaces
type ChartSvcFacade interface {
	AccountResolverSvc
	ChartAdminSvc
}
