package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	"github.com/SscSPs/kz_bookkeeping/internal/handlers"
)

type ReportingHandlerTestSuite struct {
	handlerSuite
	mockReportingService *MockReportingService
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	suite.setupRouter()
	suite.mockReportingService = new(MockReportingService)
	handlers.RegisterReportingRoutes(suite.tenant, suite.mockReportingService, 5*time.Second)
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance() {
	req := domain.ReportRequest{
		Kind:     domain.ReportTrialBalance,
		TenantID: suite.tenantID,
		From:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.mockReportingService.On("BuildReport", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return hasDeadline
	}), req).Return(&domain.Report{
		Kind:         domain.ReportTrialBalance,
		From:         req.From,
		To:           req.To,
		TrialBalance: &domain.TrialBalanceData{IsBalanced: true},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/reports/trial-balance?from=2025-03-01&to=2025-03-31", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp domain.Report
	suite.decode(w, &resp)
	suite.Equal(domain.ReportTrialBalance, resp.Kind)
	suite.Require().NotNil(resp.TrialBalance)
	suite.True(resp.TrialBalance.IsBalanced)
	suite.Nil(resp.BalanceSheet)
}

func (suite *ReportingHandlerTestSuite) TestReport_MissingRange() {
	w := suite.do(http.MethodGet, "/reports/balance-sheet?from=2025-03-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "BuildReport", mock.Anything, mock.Anything)
}

func (suite *ReportingHandlerTestSuite) TestReport_InvertedRange() {
	suite.mockReportingService.On("BuildReport", mock.Anything, mock.MatchedBy(func(r domain.ReportRequest) bool {
		return r.Kind == domain.ReportProfitLoss
	})).Return(nil, apperrors.ErrValidation).Once()

	w := suite.do(http.MethodGet, "/reports/profit-and-loss?from=2025-04-01&to=2025-03-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReportingHandlerTestSuite) TestSetOpeningBalances() {
	cashID := uuid.NewString()
	capitalID := uuid.NewString()
	suite.mockReportingService.On("SetOpeningBalances", mock.Anything, suite.tenantID, 2025,
		mock.MatchedBy(func(bs []domain.OpeningBalance) bool {
			return len(bs) == 2 && bs[0].AccountID == cashID && bs[0].OpeningDebit.Equal(decimal.NewFromInt(500))
		}), suite.userID).Return(nil).Once()

	w := suite.do(http.MethodPut, "/opening-balances/2025", map[string]any{
		"balances": []map[string]any{
			{"accountID": cashID, "openingDebit": "500", "openingCredit": "0"},
			{"accountID": capitalID, "openingDebit": "0", "openingCredit": "500"},
		},
	})

	suite.Equal(http.StatusNoContent, w.Code, w.Body.String())
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestSetOpeningBalances_BadYear() {
	w := suite.do(http.MethodPut, "/opening-balances/next", map[string]any{"balances": []map[string]any{}})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestReportingHandler(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
