package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	"github.com/SscSPs/kz_bookkeeping/internal/dto"
	"github.com/SscSPs/kz_bookkeeping/internal/handlers"
)

type JournalHandlerTestSuite struct {
	handlerSuite
	mockJournalService *MockJournalService
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	suite.setupRouter()
	suite.mockJournalService = new(MockJournalService)
	handlers.RegisterJournalRoutes(suite.tenant, suite.mockJournalService)
}

func (suite *JournalHandlerTestSuite) postedEntry(date time.Time) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    suite.tenantID,
		PeriodID:    uuid.NewString(),
		EntryDate:   date,
		Status:      domain.EntryPosted,
		Source:      domain.SourceTransaction,
		Description: "Office rent",
	}
}

func (suite *JournalHandlerTestSuite) TestPostTransaction_Success() {
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	bankID := uuid.NewString()
	suite.mockJournalService.On("PostTransaction", mock.Anything, mock.MatchedBy(func(in domain.TransactionIntent) bool {
		return in.TenantID == suite.tenantID &&
			in.ActorID == suite.userID &&
			in.Type == domain.TransactionExpense &&
			in.Date.Equal(date) &&
			in.Amount.Equal(decimal.RequireFromString("150000.50")) &&
			in.PrimaryAccountID == bankID &&
			in.CounterAccountID == nil
	})).Return(suite.postedEntry(date), nil).Once()

	w := suite.do(http.MethodPost, "/transactions", `{"date":"2025-03-10","type":"EXPENSE","amount":"150000.50","primaryAccountID":"`+bankID+`","description":"Office rent"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal(domain.EntryPosted, resp.Status)
	suite.Equal("2025-03-10", resp.EntryDate.Format(time.DateOnly))
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostTransaction_MissingDate() {
	w := suite.do(http.MethodPost, "/transactions", map[string]any{
		"type":             "INCOME",
		"amount":           "100",
		"primaryAccountID": uuid.NewString(),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestPostTransaction_PeriodClosed() {
	periodID := uuid.NewString()
	suite.mockJournalService.On("PostTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewPeriodClosedError(suite.tenantID, periodID, string(domain.PeriodSoftClosed))).Once()

	w := suite.do(http.MethodPost, "/transactions", map[string]any{
		"date":             "2025-01-15",
		"type":             "INCOME",
		"amount":           "100",
		"primaryAccountID": uuid.NewString(),
	})

	suite.Equal(http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal(string(apperrors.PeriodErrorClosed), resp.Kind)
	suite.Equal(periodID, resp.PeriodID)
	suite.Equal(string(domain.PeriodSoftClosed), resp.Status)
	suite.Equal(apperrors.RemediationPeriods, resp.Remediation)
}

func (suite *JournalHandlerTestSuite) TestPostTransaction_NoPeriod() {
	suite.mockJournalService.On("PostTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewPeriodNotFoundError(suite.tenantID, "2031-01-01")).Once()

	w := suite.do(http.MethodPost, "/transactions", map[string]any{
		"date":             "2031-01-01",
		"type":             "INCOME",
		"amount":           "100",
		"primaryAccountID": uuid.NewString(),
	})

	suite.Equal(http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal(string(apperrors.PeriodErrorNotFound), resp.Kind)
	suite.Equal("2031-01-01", resp.Date)
}

func (suite *JournalHandlerTestSuite) TestPostTransaction_MissingMapping() {
	suite.mockJournalService.On("PostTransaction", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConfigurationError(suite.tenantID, domain.MappingOtherIncome)).Once()

	w := suite.do(http.MethodPost, "/transactions", map[string]any{
		"date":             "2025-03-10",
		"type":             "INCOME",
		"amount":           "100",
		"primaryAccountID": uuid.NewString(),
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal([]string{domain.MappingOtherIncome}, resp.Keys)
	suite.Equal(apperrors.RemediationAccountMappings, resp.Remediation)
}

func (suite *JournalHandlerTestSuite) TestPostManualEntry_Unbalanced() {
	suite.mockJournalService.On("PostManualEntry", mock.Anything, mock.MatchedBy(func(req domain.ManualEntryRequest) bool {
		return len(req.Lines) == 2 && req.Lines[0].Debit.Equal(decimal.NewFromInt(100)) && !req.Draft
	})).Return(nil, &apperrors.BalanceError{Debit: "100", Credit: "90"}).Once()

	w := suite.do(http.MethodPost, "/entries", map[string]any{
		"date":        "2025-03-10",
		"description": "Adjustment",
		"lines": []map[string]any{
			{"accountID": uuid.NewString(), "debit": "100"},
			{"accountID": uuid.NewString(), "credit": "90"},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("100", resp.Debit)
	suite.Equal("90", resp.Credit)
}

func (suite *JournalHandlerTestSuite) TestPostManualEntry_SingleLineRejected() {
	w := suite.do(http.MethodPost, "/entries", map[string]any{
		"date":        "2025-03-10",
		"description": "Adjustment",
		"lines":       []map[string]any{{"accountID": uuid.NewString(), "debit": "100"}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PostManualEntry", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_DefaultsToOriginalDate() {
	entryID := uuid.NewString()
	reversal := suite.postedEntry(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	reversal.OriginalEntryID = &entryID
	suite.mockJournalService.On("ReverseEntry", mock.Anything, suite.tenantID, entryID, time.Time{}, suite.userID).Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/entries/"+entryID+"/reverse", nil)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.OriginalEntryID)
	suite.Equal(entryID, *resp.OriginalEntryID)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_WithDate() {
	entryID := uuid.NewString()
	date := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	suite.mockJournalService.On("ReverseEntry", mock.Anything, suite.tenantID, entryID, date, suite.userID).Return(suite.postedEntry(date), nil).Once()

	w := suite.do(http.MethodPost, "/entries/"+entryID+"/reverse", map[string]any{"date": "2025-04-01"})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_AlreadyReversed() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("ReverseEntry", mock.Anything, suite.tenantID, entryID, time.Time{}, suite.userID).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.do(http.MethodPost, "/entries/"+entryID+"/reverse", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListEntries_Filters() {
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	next := "next-page"
	suite.mockJournalService.On("ListEntries", mock.Anything, suite.tenantID, mock.MatchedBy(func(f portsrepo.EntryFilter) bool {
		return f.From != nil && f.From.Equal(from) && f.To == nil && f.Status != nil && *f.Status == domain.EntryDraft
	}), 5, (*string)(nil)).Return([]domain.JournalEntry{*suite.postedEntry(from)}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/entries?from=2025-03-01&status=DRAFT&limit=5", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListEntriesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *JournalHandlerTestSuite) TestListEntries_BadStatus() {
	w := suite.do(http.MethodGet, "/entries?status=VOID", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestPostDraft() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("PostDraftEntry", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return(suite.postedEntry(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)), nil).Once()

	w := suite.do(http.MethodPost, "/entries/"+entryID+"/post", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
