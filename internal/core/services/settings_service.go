package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/payroll"
)

type settingsService struct {
	BaseService
	settingsRepo    portsrepo.SettingsRepositoryFacade
	chart           portssvc.AccountResolverSvc
	otherIncomeCode string
}

// SettingsServiceOption is a functional option for configuring the settings service
type SettingsServiceOption func(*settingsService)

// WithOtherIncomeCode sets the default chart code behind the other_income mapping.
func WithOtherIncomeCode(code string) SettingsServiceOption {
	return func(s *settingsService) {
		if code != "" {
			s.otherIncomeCode = code
		}
	}
}

// NewSettingsService creates the tenant settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade, chart portssvc.AccountResolverSvc, options ...SettingsServiceOption) portssvc.SettingsSvcFacade {
	svc := &settingsService{
		settingsRepo:    settingsRepo,
		chart:           chart,
		otherIncomeCode: domain.CodeOtherIncome,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetTaxSettings(ctx context.Context, tenantID string, year int) (*domain.TaxSettings, error) {
	settings, err := s.settingsRepo.FindTaxSettings(ctx, tenantID, year)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read tax settings", slog.String("tenant_id", tenantID), slog.Int("year", year))
		return nil, fmt.Errorf("failed to read tax settings: %w", err)
	}
	defaults := payroll.DefaultSettings(year)
	return &defaults, nil
}

func (s *settingsService) SaveTaxSettings(ctx context.Context, tenantID string, settings domain.TaxSettings, actorID string) error {
	if err := validateStruct(settings); err != nil {
		return err
	}
	if err := payroll.ValidateSettings(settings); err != nil {
		return err
	}
	if err := s.settingsRepo.SaveTaxSettings(ctx, tenantID, settings, actorID); err != nil {
		s.LogError(ctx, err, "Failed to save tax settings", slog.String("tenant_id", tenantID), slog.Int("year", settings.Year))
		return fmt.Errorf("failed to save tax settings: %w", err)
	}
	s.LogInfo(ctx, "Tax settings saved", slog.String("tenant_id", tenantID), slog.Int("year", settings.Year))
	return nil
}

func (s *settingsService) defaultCodes() map[string]string {
	codes := domain.DefaultPayrollMappingCodes()
	codes[domain.MappingOtherIncome] = s.otherIncomeCode
	return codes
}

func (s *settingsService) GetAccountMappings(ctx context.Context, tenantID string) (map[string]string, error) {
	overrides, err := s.settingsRepo.FindAccountMappings(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read account mappings", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to read account mappings: %w", err)
	}

	result := make(map[string]string)
	for key, code := range s.defaultCodes() {
		if id := overrides[key]; id != "" {
			result[key] = id
			continue
		}
		acc, err := s.chart.Resolve(ctx, tenantID, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrConfiguration) {
				result[key] = ""
				continue
			}
			return nil, err
		}
		result[key] = acc.AccountID
	}
	return result, nil
}

func (s *settingsService) SetAccountMapping(ctx context.Context, tenantID, key, accountID, actorID string) error {
	if !domain.IsMappingKey(key) {
		return fmt.Errorf("%w: unknown mapping key %q", apperrors.ErrValidation, key)
	}
	acc, err := s.chart.ResolveByID(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, accountID)
		}
		return err
	}
	if !acc.IsPostable() {
		return fmt.Errorf("%w: account %s does not accept postings", apperrors.ErrValidation, acc.Code)
	}

	if err := s.settingsRepo.SaveAccountMapping(ctx, tenantID, key, accountID, actorID); err != nil {
		s.LogError(ctx, err, "Failed to save account mapping", slog.String("tenant_id", tenantID), slog.String("key", key))
		return fmt.Errorf("failed to save account mapping: %w", err)
	}
	s.LogInfo(ctx, "Account mapping saved", slog.String("tenant_id", tenantID), slog.String("key", key), slog.String("account_id", accountID))
	return nil
}
