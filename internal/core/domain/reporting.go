package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
)

// OpeningBalance is the balance carried forward into a fiscal year.
type OpeningBalance struct {
	AccountID     string          `json:"accountID"`
	FiscalYear    int             `json:"fiscalYear"`
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
}

// AccountBalance is derived per report request and never persisted.
type AccountBalance struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Class          AccountClass    `json:"class"`
	IsCurrent      *bool           `json:"isCurrent,omitempty"`
	OpeningDebit   decimal.Decimal `json:"openingDebit"`
	OpeningCredit  decimal.Decimal `json:"openingCredit"`
	TurnoverDebit  decimal.Decimal `json:"turnoverDebit"`
	TurnoverCredit decimal.Decimal `json:"turnoverCredit"`
	ClosingDebit   decimal.Decimal `json:"closingDebit"`
	ClosingCredit  decimal.Decimal `json:"closingCredit"`
}

// HasActivity reports whether the row has any opening or turnover amount.
func (b AccountBalance) HasActivity() bool {
	return !b.OpeningDebit.IsZero() || !b.OpeningCredit.IsZero() ||
		!b.TurnoverDebit.IsZero() || !b.TurnoverCredit.IsZero()
}

// NetClosing returns the closing balance signed by the class's natural side.
func (b AccountBalance) NetClosing() decimal.Decimal {
	if b.Class.IsDebitNormal() {
		return b.ClosingDebit.Sub(b.ClosingCredit)
	}
	return b.ClosingCredit.Sub(b.ClosingDebit)
}

// TrialBalanceTotals are the column totals of a trial balance.
type TrialBalanceTotals struct {
	OpeningDebit   decimal.Decimal `json:"openingDebit"`
	OpeningCredit  decimal.Decimal `json:"openingCredit"`
	TurnoverDebit  decimal.Decimal `json:"turnoverDebit"`
	TurnoverCredit decimal.Decimal `json:"turnoverCredit"`
	ClosingDebit   decimal.Decimal `json:"closingDebit"`
	ClosingCredit  decimal.Decimal `json:"closingCredit"`
}

// TrialBalanceData holds the rows with activity plus totals over every account.
type TrialBalanceData struct {
	Rows       []AccountBalance   `json:"rows"`
	Totals     TrialBalanceTotals `json:"totals"`
	IsBalanced bool               `json:"isBalanced"`
}

// BalanceSheetLine is one account amount on the balance sheet, signed by its natural side.
type BalanceSheetLine struct {
	AccountID string          `json:"accountID,omitempty"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// BalanceSheet is the point-in-time statement of financial position.
type BalanceSheet struct {
	CurrentAssets         []BalanceSheetLine `json:"currentAssets"`
	NonCurrentAssets      []BalanceSheetLine `json:"nonCurrentAssets"`
	CurrentLiabilities    []BalanceSheetLine `json:"currentLiabilities"`
	NonCurrentLiabilities []BalanceSheetLine `json:"nonCurrentLiabilities"`
	Equity                []BalanceSheetLine `json:"equity"`
	TotalCurrentAssets    decimal.Decimal    `json:"totalCurrentAssets"`
	TotalNonCurrentAssets decimal.Decimal    `json:"totalNonCurrentAssets"`
	TotalAssets           decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal    `json:"totalEquity"`
	IsBalanced            bool               `json:"isBalanced"`
}

// ProfitLossLine is one revenue or expense account's net turnover.
type ProfitLossLine struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitLoss is the period-flow income statement.
type ProfitLoss struct {
	Revenue       []ProfitLossLine `json:"revenue"`
	Expenses      []ProfitLossLine `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetProfit     decimal.Decimal  `json:"netProfit"`
}

// ReportKind selects which statement a ReportRequest builds.
type ReportKind string

const (
	ReportTrialBalance ReportKind = "TRIAL_BALANCE"
	ReportBalanceSheet ReportKind = "BALANCE_SHEET"
	ReportProfitLoss   ReportKind = "PROFIT_LOSS"
)

// ReportRequest names the statement and the explicit date range it covers.
type ReportRequest struct {
	Kind     ReportKind
	TenantID string
	From     time.Time
	To       time.Time
}

// Validate checks the request before any data is read.
func (r ReportRequest) Validate() error {
	switch r.Kind {
	case ReportTrialBalance, ReportBalanceSheet, ReportProfitLoss:
	default:
		return fmt.Errorf("%w: unknown report kind %q", apperrors.ErrValidation, r.Kind)
	}
	if r.TenantID == "" {
		return fmt.Errorf("%w: tenant is required", apperrors.ErrValidation)
	}
	if r.From.IsZero() || r.To.IsZero() {
		return fmt.Errorf("%w: report range is required", apperrors.ErrValidation)
	}
	if DateOnly(r.From).After(DateOnly(r.To)) {
		return fmt.Errorf("%w: report range starts after it ends", apperrors.ErrValidation)
	}
	return nil
}

// Report is the result of BuildReport; exactly one statement field is set, matching Kind.
type Report struct {
	Kind         ReportKind        `json:"kind"`
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	TrialBalance *TrialBalanceData `json:"trialBalance,omitempty"`
	BalanceSheet *BalanceSheet     `json:"balanceSheet,omitempty"`
	ProfitLoss   *ProfitLoss       `json:"profitLoss,omitempty"`
}
