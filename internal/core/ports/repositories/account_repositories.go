package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account of a tenant by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Unknown IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the tenant's whole chart ordered by code.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccounts persists new accounts in one transaction.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
