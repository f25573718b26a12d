package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, userID, now)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
// CreatePeriods and TransitionPeriods return the locked rows configured on
// the mock to the real planner, so tests exercise the planning logic.
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.Period, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.Period, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) CreatePeriods(ctx context.Context, tenantID string, plan portsrepo.PeriodPlanner) ([]domain.Period, error) {
	args := m.Called(ctx, tenantID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	current, _ := args.Get(0).([]domain.Period)
	return plan(current)
}

func (m *MockPeriodRepository) TransitionPeriods(ctx context.Context, tenantID string, plan portsrepo.PeriodPlanner) ([]domain.Period, error) {
	args := m.Called(ctx, tenantID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	current, _ := args.Get(0).([]domain.Period)
	return plan(current)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) PostDraft(ctx context.Context, tenantID, entryID, periodID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, entryID, periodID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, reversal, lines)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ListOpeningBalances(ctx context.Context, tenantID string, fiscalYear int) ([]domain.OpeningBalance, error) {
	args := m.Called(ctx, tenantID, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningBalance), args.Error(1)
}

func (m *MockReportingRepository) ListPostedLines(ctx context.Context, q portsrepo.LineQuery) ([]domain.JournalLine, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockReportingRepository) ReplaceOpeningBalances(ctx context.Context, tenantID string, fiscalYear int, balances []domain.OpeningBalance, userID string) error {
	args := m.Called(ctx, tenantID, fiscalYear, balances, userID)
	return args.Error(0)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) FindTaxSettings(ctx context.Context, tenantID string, year int) (*domain.TaxSettings, error) {
	args := m.Called(ctx, tenantID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSettings), args.Error(1)
}

func (m *MockSettingsRepository) FindAccountMappings(ctx context.Context, tenantID string) (map[string]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsRepository) SaveTaxSettings(ctx context.Context, tenantID string, settings domain.TaxSettings, userID string) error {
	args := m.Called(ctx, tenantID, settings, userID)
	return args.Error(0)
}

func (m *MockSettingsRepository) SaveAccountMapping(ctx context.Context, tenantID, key, accountID, userID string) error {
	args := m.Called(ctx, tenantID, key, accountID, userID)
	return args.Error(0)
}

// --- Mock InvoiceReader ---
type MockInvoiceReader struct {
	mock.Mock
}

var _ portsrepo.InvoiceReader = (*MockInvoiceReader)(nil)

func (m *MockInvoiceReader) FindInvoiceRevenueAccount(ctx context.Context, tenantID, invoiceID string) (string, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	return args.String(0), args.Error(1)
}

// --- Mock PeriodGate (as used by JournalService) ---
type MockPeriodGate struct {
	mock.Mock
}

var _ portssvc.PeriodGateSvc = (*MockPeriodGate)(nil)

func (m *MockPeriodGate) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.Period, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodGate) ValidateForPosting(ctx context.Context, tenantID string, date time.Time) (string, error) {
	args := m.Called(ctx, tenantID, date)
	return args.String(0), args.Error(1)
}

// --- Mock AccountMappings (as used by JournalService) ---
type MockAccountMappings struct {
	mock.Mock
}

func (m *MockAccountMappings) GetAccountMappings(ctx context.Context, tenantID string) (map[string]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// --- Mock JournalWriter (as used by PayrollService) ---
type MockJournalWriter struct {
	mock.Mock
}

var _ portssvc.JournalWriterSvc = (*MockJournalWriter)(nil)

func (m *MockJournalWriter) PostTransaction(ctx context.Context, intent domain.TransactionIntent) (*domain.JournalEntry, error) {
	args := m.Called(ctx, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalWriter) PostManualEntry(ctx context.Context, req domain.ManualEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalWriter) PostDraftEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalWriter) ReverseEntry(ctx context.Context, tenantID, entryID string, date time.Time, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, date, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalWriter) PostLines(ctx context.Context, batch domain.LineBatch) (*domain.JournalEntry, error) {
	args := m.Called(ctx, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
