package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
)

// --- Mock ChartService ---
type MockChartService struct {
	mock.Mock
}

var _ portssvc.ChartSvcFacade = (*MockChartService)(nil)

func (m *MockChartService) Resolve(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) ResolveByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) ResolveMany(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockChartService) CreateAccount(ctx context.Context, account domain.Account, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, account, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) UpdateAccount(ctx context.Context, tenantID, accountID string, update domain.AccountUpdate, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, update, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) DeactivateAccount(ctx context.Context, tenantID, accountID, actorID string) error {
	args := m.Called(ctx, tenantID, accountID, actorID)
	return args.Error(0)
}

func (m *MockChartService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockChartService) SeedChartFromTemplate(ctx context.Context, tenantID, actorID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) period(args mock.Arguments) (*domain.Period, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.Period, error) {
	return m.period(m.Called(ctx, tenantID, date))
}

func (m *MockPeriodService) ValidateForPosting(ctx context.Context, tenantID string, date time.Time) (string, error) {
	args := m.Called(ctx, tenantID, date)
	return args.String(0), args.Error(1)
}

func (m *MockPeriodService) CreatePeriod(ctx context.Context, tenantID, name string, start, end time.Time, actorID string) (*domain.Period, error) {
	return m.period(m.Called(ctx, tenantID, name, start, end, actorID))
}

func (m *MockPeriodService) InitializeFiscalYear(ctx context.Context, tenantID string, year int, openMonth time.Month, actorID string) ([]domain.Period, error) {
	args := m.Called(ctx, tenantID, year, openMonth, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodService) OpenPeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actorID))
}

func (m *MockPeriodService) SoftClosePeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actorID))
}

func (m *MockPeriodService) HardClosePeriod(ctx context.Context, tenantID, periodID, actorID string) (*domain.Period, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actorID))
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.Period, error) {
	return m.period(m.Called(ctx, tenantID, periodID))
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.Period, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID))
}

func (m *MockJournalService) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalService) PostTransaction(ctx context.Context, intent domain.TransactionIntent) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, intent))
}

func (m *MockJournalService) PostManualEntry(ctx context.Context, req domain.ManualEntryRequest) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req))
}

func (m *MockJournalService) PostDraftEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, actorID))
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, tenantID, entryID string, date time.Time, actorID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tenantID, entryID, date, actorID))
}

func (m *MockJournalService) PostLines(ctx context.Context, batch domain.LineBatch) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, batch))
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) TrialBalance(ctx context.Context, req domain.ReportRequest) (*domain.TrialBalanceData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceData), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, req domain.ReportRequest) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, req domain.ReportRequest) (*domain.ProfitLoss, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLoss), args.Error(1)
}

func (m *MockReportingService) BuildReport(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportingService) AccountBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockReportingService) SetOpeningBalances(ctx context.Context, tenantID string, fiscalYear int, balances []domain.OpeningBalance, actorID string) error {
	args := m.Called(ctx, tenantID, fiscalYear, balances, actorID)
	return args.Error(0)
}

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

func (m *MockSettingsService) GetTaxSettings(ctx context.Context, tenantID string, year int) (*domain.TaxSettings, error) {
	args := m.Called(ctx, tenantID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSettings), args.Error(1)
}

func (m *MockSettingsService) SaveTaxSettings(ctx context.Context, tenantID string, settings domain.TaxSettings, actorID string) error {
	args := m.Called(ctx, tenantID, settings, actorID)
	return args.Error(0)
}

func (m *MockSettingsService) GetAccountMappings(ctx context.Context, tenantID string) (map[string]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsService) SetAccountMapping(ctx context.Context, tenantID, key, accountID, actorID string) error {
	args := m.Called(ctx, tenantID, key, accountID, actorID)
	return args.Error(0)
}

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

var _ portssvc.PayrollSvcFacade = (*MockPayrollService)(nil)

func (m *MockPayrollService) Calculate(ctx context.Context, tenantID string, year int, pay domain.EmployeePay) (*domain.PayrollCalculation, error) {
	args := m.Called(ctx, tenantID, year, pay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollCalculation), args.Error(1)
}

func (m *MockPayrollService) PostPayroll(ctx context.Context, run domain.PayrollRun) (*domain.PayrollPosting, error) {
	args := m.Called(ctx, run)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollPosting), args.Error(1)
}
