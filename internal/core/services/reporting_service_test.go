package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingService
	tenantID          string
	userID            string
	cash, capital     domain.Account
	sales             domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cash = domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "1010", Name: "Cash", Class: domain.Asset, AllowManualEntry: true, IsActive: true}
	suite.capital = domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "5010", Name: "Share capital", Class: domain.Equity, AllowManualEntry: true, IsActive: true}
	suite.sales = domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "6010", Name: "Sales", Class: domain.Revenue, AllowManualEntry: true, IsActive: true}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// primeMarch sets up a fiscal year starting in January with a stored
// opening, February activity and March activity.
func (suite *ReportingServiceTestSuite) primeMarch() {
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.tenantID).
		Return([]domain.Account{suite.cash, suite.capital, suite.sales}, nil).Once()
	suite.mockReportingRepo.On("ListOpeningBalances", mock.Anything, suite.tenantID, 2025).Return([]domain.OpeningBalance{
		{AccountID: suite.cash.AccountID, FiscalYear: 2025, OpeningDebit: decimal.NewFromInt(1000), OpeningCredit: decimal.Zero},
		{AccountID: suite.capital.AccountID, FiscalYear: 2025, OpeningDebit: decimal.Zero, OpeningCredit: decimal.NewFromInt(1000)},
	}, nil).Once()
	suite.mockReportingRepo.On("ListPostedLines", mock.Anything, portsrepo.LineQuery{
		TenantID: suite.tenantID, From: day(2025, time.January, 1), To: day(2025, time.February, 28),
	}).Return([]domain.JournalLine{
		domain.DebitLine(suite.cash.AccountID, decimal.NewFromInt(200), ""),
		domain.CreditLine(suite.sales.AccountID, decimal.NewFromInt(200), ""),
	}, nil).Once()
	suite.mockReportingRepo.On("ListPostedLines", mock.Anything, portsrepo.LineQuery{
		TenantID: suite.tenantID, From: day(2025, time.March, 1), To: day(2025, time.March, 31),
	}).Return([]domain.JournalLine{
		domain.DebitLine(suite.cash.AccountID, decimal.NewFromInt(50), ""),
		domain.CreditLine(suite.sales.AccountID, decimal.NewFromInt(50), ""),
	}, nil).Once()
}

func (suite *ReportingServiceTestSuite) marchRequest(kind domain.ReportKind) domain.ReportRequest {
	return domain.ReportRequest{Kind: kind, TenantID: suite.tenantID, From: day(2025, time.March, 1), To: day(2025, time.March, 31)}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_FoldsEarlierActivityIntoOpening() {
	ctx := context.Background()
	suite.primeMarch()

	tb, err := suite.service.TrialBalance(ctx, suite.marchRequest(domain.ReportTrialBalance))

	suite.Require().NoError(err)
	suite.True(tb.IsBalanced)
	suite.Require().Len(tb.Rows, 3)

	cash := tb.Rows[0]
	suite.Equal("1010", cash.Code)
	suite.True(decimal.NewFromInt(1200).Equal(cash.OpeningDebit), cash.OpeningDebit.String())
	suite.True(decimal.NewFromInt(50).Equal(cash.TurnoverDebit))
	suite.True(decimal.NewFromInt(1250).Equal(cash.ClosingDebit))

	sales := tb.Rows[2]
	suite.True(decimal.NewFromInt(200).Equal(sales.OpeningCredit))
	suite.True(decimal.NewFromInt(250).Equal(sales.ClosingCredit))

	suite.True(tb.Totals.ClosingDebit.Equal(tb.Totals.ClosingCredit))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_IncludesCurrentResult() {
	ctx := context.Background()
	suite.primeMarch()

	bs, err := suite.service.BalanceSheet(ctx, suite.marchRequest(domain.ReportBalanceSheet))

	suite.Require().NoError(err)
	suite.True(bs.IsBalanced)
	suite.True(decimal.NewFromInt(1250).Equal(bs.TotalAssets))
	suite.True(decimal.NewFromInt(1250).Equal(bs.TotalEquity))
	suite.True(bs.TotalLiabilities.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBuildReport_ProfitLossUsesTurnoverOnly() {
	ctx := context.Background()
	suite.primeMarch()

	report, err := suite.service.BuildReport(ctx, suite.marchRequest(domain.ReportProfitLoss))

	suite.Require().NoError(err)
	suite.Equal(domain.ReportProfitLoss, report.Kind)
	suite.Nil(report.TrialBalance)
	suite.Nil(report.BalanceSheet)
	suite.Require().NotNil(report.ProfitLoss)
	suite.True(decimal.NewFromInt(50).Equal(report.ProfitLoss.TotalRevenue))
	suite.True(decimal.NewFromInt(50).Equal(report.ProfitLoss.NetProfit))
}

func (suite *ReportingServiceTestSuite) TestInvalidRequests() {
	ctx := context.Background()

	_, err := suite.service.BuildReport(ctx, domain.ReportRequest{Kind: "CASH_FLOW", TenantID: suite.tenantID, From: day(2025, 1, 1), To: day(2025, 1, 31)})
	suite.True(errors.Is(err, apperrors.ErrValidation))

	_, err = suite.service.TrialBalance(ctx, domain.ReportRequest{TenantID: suite.tenantID, From: day(2025, 2, 1), To: day(2025, 1, 31)})
	suite.True(errors.Is(err, apperrors.ErrValidation))

	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestAccountBalance() {
	ctx := context.Background()
	asOf := day(2025, time.March, 31)
	accountID := suite.cash.AccountID

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, accountID).Return(&suite.cash, nil).Once()
	suite.mockReportingRepo.On("ListOpeningBalances", mock.Anything, suite.tenantID, 2025).Return([]domain.OpeningBalance{
		{AccountID: accountID, FiscalYear: 2025, OpeningDebit: decimal.NewFromInt(1000), OpeningCredit: decimal.Zero},
		{AccountID: suite.capital.AccountID, FiscalYear: 2025, OpeningDebit: decimal.Zero, OpeningCredit: decimal.NewFromInt(1000)},
	}, nil).Once()
	suite.mockReportingRepo.On("ListPostedLines", mock.Anything, portsrepo.LineQuery{
		TenantID: suite.tenantID, From: day(2025, time.January, 1), To: asOf, AccountID: &accountID,
	}).Return([]domain.JournalLine{
		domain.DebitLine(accountID, decimal.NewFromInt(250), ""),
		domain.CreditLine(accountID, decimal.NewFromInt(100), ""),
	}, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.tenantID, accountID, asOf)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1150).Equal(balance.ClosingDebit), balance.ClosingDebit.String())
	suite.True(decimal.NewFromInt(1150).Equal(balance.NetClosing()))
}

func (suite *ReportingServiceTestSuite) TestSetOpeningBalances() {
	ctx := context.Background()
	balances := []domain.OpeningBalance{
		{AccountID: suite.cash.AccountID, OpeningDebit: decimal.NewFromInt(500), OpeningCredit: decimal.Zero},
		{AccountID: suite.capital.AccountID, OpeningDebit: decimal.Zero, OpeningCredit: decimal.NewFromInt(500)},
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID, []string{suite.cash.AccountID, suite.capital.AccountID}).
		Return(map[string]domain.Account{suite.cash.AccountID: suite.cash, suite.capital.AccountID: suite.capital}, nil).Once()
	suite.mockReportingRepo.On("ReplaceOpeningBalances", mock.Anything, suite.tenantID, 2025,
		mock.MatchedBy(func(bs []domain.OpeningBalance) bool {
			return len(bs) == 2 && bs[0].FiscalYear == 2025 && bs[1].FiscalYear == 2025
		}), suite.userID).Return(nil).Once()

	err := suite.service.SetOpeningBalances(ctx, suite.tenantID, 2025, balances, suite.userID)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSetOpeningBalances_Invalid() {
	ctx := context.Background()

	both := []domain.OpeningBalance{{AccountID: suite.cash.AccountID, OpeningDebit: decimal.NewFromInt(1), OpeningCredit: decimal.NewFromInt(1)}}
	suite.True(errors.Is(suite.service.SetOpeningBalances(ctx, suite.tenantID, 2025, both, suite.userID), apperrors.ErrValidation))

	dup := []domain.OpeningBalance{
		{AccountID: suite.cash.AccountID, OpeningDebit: decimal.NewFromInt(1), OpeningCredit: decimal.Zero},
		{AccountID: suite.cash.AccountID, OpeningDebit: decimal.NewFromInt(2), OpeningCredit: decimal.Zero},
	}
	suite.True(errors.Is(suite.service.SetOpeningBalances(ctx, suite.tenantID, 2025, dup, suite.userID), apperrors.ErrValidation))

	unknownID := uuid.NewString()
	unknown := []domain.OpeningBalance{{AccountID: unknownID, OpeningDebit: decimal.NewFromInt(1), OpeningCredit: decimal.Zero}}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID, []string{unknownID}).Return(map[string]domain.Account{}, nil).Once()
	suite.True(errors.Is(suite.service.SetOpeningBalances(ctx, suite.tenantID, 2025, unknown, suite.userID), apperrors.ErrValidation))

	suite.mockReportingRepo.AssertNotCalled(suite.T(), "ReplaceOpeningBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
