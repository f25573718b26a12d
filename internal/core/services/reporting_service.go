package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo        portsrepo.ReportingRepositoryFacade
	accountRepo          portsrepo.AccountReader
	fiscalYearStartMonth time.Month
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingFiscalYearStart sets the month opening balances are carried into.
func WithReportingFiscalYearStart(month time.Month) ReportingServiceOption {
	return func(s *reportingService) {
		if month >= time.January && month <= time.December {
			s.fiscalYearStartMonth = month
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo:        reportingRepo,
		accountRepo:          accountRepo,
		fiscalYearStartMonth: time.January,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// openingsAsOf returns the balances carried into the day from: the stored
// fiscal year openings plus every line posted earlier in that fiscal year.
func (s *reportingService) openingsAsOf(ctx context.Context, tenantID string, from time.Time, accountID *string) ([]domain.OpeningBalance, error) {
	fyStart := domain.FiscalYearStart(from, s.fiscalYearStartMonth)
	openings, err := s.reportingRepo.ListOpeningBalances(ctx, tenantID, fyStart.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}

	from = domain.DateOnly(from)
	if !from.After(fyStart) {
		return openings, nil
	}
	earlier, err := s.reportingRepo.ListPostedLines(ctx, portsrepo.LineQuery{
		TenantID:  tenantID,
		From:      fyStart,
		To:        from.AddDate(0, 0, -1),
		AccountID: accountID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list lines before %s: %w", from.Format(time.DateOnly), err)
	}
	for _, l := range earlier {
		openings = append(openings, domain.OpeningBalance{
			AccountID:     l.AccountID,
			FiscalYear:    fyStart.Year(),
			OpeningDebit:  l.Debit,
			OpeningCredit: l.Credit,
		})
	}
	return openings, nil
}

func (s *reportingService) buildTrialBalance(ctx context.Context, req domain.ReportRequest) (*domain.TrialBalanceData, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, req.TenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for report", slog.String("tenant_id", req.TenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	openings, err := s.openingsAsOf(ctx, req.TenantID, req.From, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to derive opening balances", slog.String("tenant_id", req.TenantID))
		return nil, err
	}
	lines, err := s.reportingRepo.ListPostedLines(ctx, portsrepo.LineQuery{
		TenantID: req.TenantID,
		From:     domain.DateOnly(req.From),
		To:       domain.DateOnly(req.To),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted lines", slog.String("tenant_id", req.TenantID))
		return nil, fmt.Errorf("failed to list posted lines: %w", err)
	}

	tb := accounting.BuildTrialBalance(accounts, lines, openings)
	if !tb.IsBalanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("tenant_id", req.TenantID),
			slog.String("closing_debit", tb.Totals.ClosingDebit.StringFixed(2)),
			slog.String("closing_credit", tb.Totals.ClosingCredit.StringFixed(2)))
	}
	return &tb, nil
}

func (s *reportingService) TrialBalance(ctx context.Context, req domain.ReportRequest) (*domain.TrialBalanceData, error) {
	req.Kind = domain.ReportTrialBalance
	tb, err := s.buildTrialBalance(ctx, req)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("tenant_id", req.TenantID),
		slog.Int("row_count", len(tb.Rows)))
	return tb, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, req domain.ReportRequest) (*domain.BalanceSheet, error) {
	req.Kind = domain.ReportBalanceSheet
	tb, err := s.buildTrialBalance(ctx, req)
	if err != nil {
		return nil, err
	}
	bs := accounting.BuildBalanceSheet(*tb)
	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("tenant_id", req.TenantID),
		slog.Bool("balanced", bs.IsBalanced))
	return &bs, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, req domain.ReportRequest) (*domain.ProfitLoss, error) {
	req.Kind = domain.ReportProfitLoss
	tb, err := s.buildTrialBalance(ctx, req)
	if err != nil {
		return nil, err
	}
	pl := accounting.BuildProfitLoss(*tb)
	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("tenant_id", req.TenantID),
		slog.String("net_profit", pl.NetProfit.StringFixed(2)))
	return &pl, nil
}

func (s *reportingService) BuildReport(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	report := &domain.Report{Kind: req.Kind, From: req.From, To: req.To}

	var err error
	switch req.Kind {
	case domain.ReportTrialBalance:
		report.TrialBalance, err = s.TrialBalance(ctx, req)
	case domain.ReportBalanceSheet:
		report.BalanceSheet, err = s.BalanceSheet(ctx, req)
	case domain.ReportProfitLoss:
		report.ProfitLoss, err = s.ProfitAndLoss(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportingService) AccountBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.AccountBalance, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: asOf date is required", apperrors.ErrValidation)
	}
	acc, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	fyStart := domain.FiscalYearStart(asOf, s.fiscalYearStartMonth)
	openings, err := s.openingsAsOf(ctx, tenantID, fyStart, &accountID)
	if err != nil {
		return nil, err
	}
	lines, err := s.reportingRepo.ListPostedLines(ctx, portsrepo.LineQuery{
		TenantID:  tenantID,
		From:      fyStart,
		To:        domain.DateOnly(asOf),
		AccountID: &accountID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list account lines: %w", err)
	}

	tb := accounting.BuildTrialBalance([]domain.Account{*acc}, lines, openings)
	if len(tb.Rows) == 1 {
		return &tb.Rows[0], nil
	}
	return &domain.AccountBalance{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		Class:          acc.Class,
		IsCurrent:      acc.IsCurrent,
		OpeningDebit:   decimal.Zero,
		OpeningCredit:  decimal.Zero,
		TurnoverDebit:  decimal.Zero,
		TurnoverCredit: decimal.Zero,
		ClosingDebit:   decimal.Zero,
		ClosingCredit:  decimal.Zero,
	}, nil
}

func (s *reportingService) SetOpeningBalances(ctx context.Context, tenantID string, fiscalYear int, balances []domain.OpeningBalance, actorID string) error {
	if fiscalYear < 2000 || fiscalYear > 2100 {
		return fmt.Errorf("%w: fiscal year %d out of range", apperrors.ErrValidation, fiscalYear)
	}

	ids := make([]string, 0, len(balances))
	seen := make(map[string]bool, len(balances))
	for i, b := range balances {
		if seen[b.AccountID] {
			return fmt.Errorf("%w: account %s listed twice", apperrors.ErrValidation, b.AccountID)
		}
		seen[b.AccountID] = true
		if b.OpeningDebit.IsNegative() || b.OpeningCredit.IsNegative() {
			return fmt.Errorf("%w: opening balance %d is negative", apperrors.ErrValidation, i+1)
		}
		if !b.OpeningDebit.IsZero() && !b.OpeningCredit.IsZero() {
			return fmt.Errorf("%w: opening balance %d has both debit and credit", apperrors.ErrValidation, i+1)
		}
		balances[i].FiscalYear = fiscalYear
		ids = append(ids, b.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
	}

	if err := s.reportingRepo.ReplaceOpeningBalances(ctx, tenantID, fiscalYear, balances, actorID); err != nil {
		s.LogError(ctx, err, "Failed to save opening balances", slog.String("tenant_id", tenantID), slog.Int("fiscal_year", fiscalYear))
		return fmt.Errorf("failed to save opening balances: %w", err)
	}
	s.LogInfo(ctx, "Opening balances replaced", slog.String("tenant_id", tenantID), slog.Int("fiscal_year", fiscalYear), slog.Int("count", len(balances)))
	return nil
}
