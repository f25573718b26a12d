package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/core/services"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/payroll"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockSettingsRepo *MockSettingsRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.SettingsSvcFacade
	tenantID         string
	userID           string
	chart            testChart
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.chart = newTestChart(suite.tenantID)
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.tenantID).Return(suite.chart.all(), nil)

	chart := services.NewChartService(suite.mockAccountRepo)
	suite.service = services.NewSettingsService(suite.mockSettingsRepo, chart)
}

func (suite *SettingsServiceTestSuite) TestGetTaxSettings_FallsBackToDefaults() {
	ctx := context.Background()
	suite.mockSettingsRepo.On("FindTaxSettings", mock.Anything, suite.tenantID, 2025).Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.GetTaxSettings(ctx, suite.tenantID, 2025)

	suite.Require().NoError(err)
	suite.Equal(payroll.Settings2025(), *settings)
}

func (suite *SettingsServiceTestSuite) TestGetTaxSettings_TenantOverride() {
	ctx := context.Background()
	override := payroll.Settings2025()
	override.MZP = decimal.NewFromInt(90000)
	suite.mockSettingsRepo.On("FindTaxSettings", mock.Anything, suite.tenantID, 2025).Return(&override, nil).Once()

	settings, err := suite.service.GetTaxSettings(ctx, suite.tenantID, 2025)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(90000).Equal(settings.MZP))
}

func (suite *SettingsServiceTestSuite) TestSaveTaxSettings_Validation() {
	ctx := context.Background()
	bad := payroll.Settings2025()
	bad.OPVRate = decimal.RequireFromString("1.5")

	err := suite.service.SaveTaxSettings(ctx, suite.tenantID, bad, suite.userID)

	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "SaveTaxSettings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestGetAccountMappings_MergesDefaultsAndOverrides() {
	ctx := context.Background()
	suite.mockSettingsRepo.On("FindAccountMappings", mock.Anything, suite.tenantID).
		Return(map[string]string{domain.MappingOtherIncome: suite.chart.sales.AccountID}, nil).Once()

	mappings, err := suite.service.GetAccountMappings(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Equal(suite.chart.sales.AccountID, mappings[domain.MappingOtherIncome])
	suite.Equal(suite.chart.salaries.AccountID, mappings[domain.MappingSalaryExpense])
	// The test chart has no payroll liability accounts.
	missing := domain.PayrollAccountMappings(mappings).Missing()
	suite.Contains(missing, domain.MappingIPN)
	suite.NotContains(missing, domain.MappingSalaryExpense)
}

func (suite *SettingsServiceTestSuite) TestSetAccountMapping() {
	ctx := context.Background()
	suite.mockSettingsRepo.On("SaveAccountMapping", mock.Anything, suite.tenantID, domain.MappingIPN, suite.chart.suppliers.AccountID, suite.userID).Return(nil).Once()

	err := suite.service.SetAccountMapping(ctx, suite.tenantID, domain.MappingIPN, suite.chart.suppliers.AccountID, suite.userID)
	suite.Require().NoError(err)

	err = suite.service.SetAccountMapping(ctx, suite.tenantID, "vat_payable", suite.chart.suppliers.AccountID, suite.userID)
	suite.True(errors.Is(err, apperrors.ErrValidation), "unknown key")

	err = suite.service.SetAccountMapping(ctx, suite.tenantID, domain.MappingIPN, suite.chart.header.AccountID, suite.userID)
	suite.True(errors.Is(err, apperrors.ErrValidation), "header account")

	err = suite.service.SetAccountMapping(ctx, suite.tenantID, domain.MappingIPN, uuid.NewString(), suite.userID)
	suite.True(errors.Is(err, apperrors.ErrValidation), "unknown account")

	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
