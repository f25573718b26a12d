package services

import (
	"context"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Every report takes an explicit range; there is no ambient current period.
type ReportingService interface {
	TrialBalance(ctx context.Context, req domain.ReportRequest) (*domain.TrialBalanceData, error)
	BalanceSheet(ctx context.Context, req domain.ReportRequest) (*domain.BalanceSheet, error)
	ProfitAndLoss(ctx context.Context, req domain.ReportRequest) (*domain.ProfitLoss, error)

	// BuildReport dispatches on req.Kind.
	BuildReport(ctx context.Context, req domain.ReportRequest) (*domain.Report, error)

	// AccountBalance derives one account's balance from the start of its fiscal year up to asOf.
	AccountBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, error)

	// SetOpeningBalances replaces the opening balances of a fiscal year.
	SetOpeningBalances(ctx context.Context, tenantID string, fiscalYear int, balances []domain.OpeningBalance, actorID string) error
}
