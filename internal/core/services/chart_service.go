package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
)

const defaultAccountCacheTTL = 5 * time.Minute

// tenantChart is the cached view of one tenant's chart of accounts.
type tenantChart struct {
	byCode map[string]domain.Account
	byID   map[string]domain.Account
}

type chartService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	cacheTTL    time.Duration
	charts      *cache.Cache
	now         func() time.Time
}

// ChartServiceOption is a functional option for configuring the chart service
type ChartServiceOption func(*chartService)

// WithAccountCacheTTL sets how long a tenant's chart stays cached. Zero disables caching.
func WithAccountCacheTTL(ttl time.Duration) ChartServiceOption {
	return func(s *chartService) {
		s.cacheTTL = ttl
	}
}

// WithChartClock overrides the clock used for audit fields.
func WithChartClock(now func() time.Time) ChartServiceOption {
	return func(s *chartService) {
		s.now = now
	}
}

// NewChartService creates the chart of accounts service.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade, options ...ChartServiceOption) portssvc.ChartSvcFacade {
	svc := &chartService{
		accountRepo: accountRepo,
		cacheTTL:    defaultAccountCacheTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	if svc.cacheTTL > 0 {
		svc.charts = cache.New(svc.cacheTTL, 2*svc.cacheTTL)
	}
	return svc
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

func (s *chartService) loadChart(ctx context.Context, tenantID string) (*tenantChart, error) {
	if s.charts != nil {
		if cached, ok := s.charts.Get(tenantID); ok {
			return cached.(*tenantChart), nil
		}
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	chart := &tenantChart{
		byCode: make(map[string]domain.Account, len(accounts)),
		byID:   make(map[string]domain.Account, len(accounts)),
	}
	for _, acc := range accounts {
		chart.byCode[acc.Code] = acc
		chart.byID[acc.AccountID] = acc
	}
	if s.charts != nil {
		s.charts.Set(tenantID, chart, cache.DefaultExpiration)
	}
	return chart, nil
}

func (s *chartService) invalidate(tenantID string) {
	if s.charts != nil {
		s.charts.Delete(tenantID)
	}
}

// Resolve returns the account with the given code. A missing code is a
// configuration problem, not a user input error.
func (s *chartService) Resolve(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	chart, err := s.loadChart(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	acc, ok := chart.byCode[code]
	if !ok {
		s.LogDebug(ctx, "Account code not in chart", slog.String("tenant_id", tenantID), slog.String("code", code))
		return nil, apperrors.NewConfigurationError(tenantID, "account "+code)
	}
	return &acc, nil
}

func (s *chartService) ResolveByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	chart, err := s.loadChart(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	acc, ok := chart.byID[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (s *chartService) ResolveMany(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	chart, err := s.loadChart(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		acc, ok := chart.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		result[id] = acc
	}
	return result, nil
}

func (s *chartService) CreateAccount(ctx context.Context, account domain.Account, actorID string) (*domain.Account, error) {
	if account.TenantID == "" || account.Code == "" || account.Name == "" {
		return nil, fmt.Errorf("%w: tenant, code and name are required", apperrors.ErrValidation)
	}
	if !account.Class.Valid() {
		return nil, fmt.Errorf("%w: unknown account class %q", apperrors.ErrValidation, account.Class)
	}
	if account.ParentAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, account.TenantID, account.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, account.ParentAccountID)
			}
			return nil, err
		}
	}

	now := s.now()
	account.AccountID = uuid.NewString()
	account.IsActive = true
	account.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}

	if err := s.accountRepo.SaveAccounts(ctx, []domain.Account{account}); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", account.TenantID), slog.String("code", account.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.invalidate(account.TenantID)

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *chartService) UpdateAccount(ctx context.Context, tenantID, accountID string, update domain.AccountUpdate, actorID string) (*domain.Account, error) {
	if err := validateStruct(update); err != nil {
		return nil, err
	}
	acc, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		acc.Name = *update.Name
	}
	if update.IsCurrent != nil {
		isCurrent := *update.IsCurrent
		acc.IsCurrent = &isCurrent
	}
	if update.AllowManualEntry != nil {
		acc.AllowManualEntry = *update.AllowManualEntry
	}
	if update.ParentAccountID != nil {
		if *update.ParentAccountID == accountID {
			return nil, fmt.Errorf("%w: an account cannot be its own parent", apperrors.ErrValidation)
		}
		acc.ParentAccountID = *update.ParentAccountID
	}
	acc.LastUpdatedAt = s.now()
	acc.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *acc); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	s.invalidate(tenantID)
	return acc, nil
}

func (s *chartService) DeactivateAccount(ctx context.Context, tenantID, accountID, actorID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, actorID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.invalidate(tenantID)
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *chartService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, tenantID)
}

func (s *chartService) SeedChartFromTemplate(ctx context.Context, tenantID, actorID string) ([]domain.Account, error) {
	existing, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: tenant already has a chart of accounts", apperrors.ErrConflict)
	}

	now := s.now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	idByCode := make(map[string]string)
	template := domain.DefaultChartTemplate()
	accounts := make([]domain.Account, 0, len(template))
	for _, entry := range template {
		acc := domain.Account{
			AccountID:        uuid.NewString(),
			TenantID:         tenantID,
			Code:             entry.Code,
			Name:             entry.Name,
			Class:            entry.Class,
			ParentAccountID:  idByCode[entry.ParentCode],
			AllowManualEntry: entry.AllowManualEntry,
			IsActive:         true,
			AuditFields:      audit,
		}
		idByCode[entry.Code] = acc.AccountID
		accounts = append(accounts, acc)
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}
	s.invalidate(tenantID)

	s.LogInfo(ctx, "Chart of accounts seeded", slog.String("tenant_id", tenantID), slog.Int("account_count", len(accounts)))
	return accounts, nil
}
