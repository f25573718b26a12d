package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// LineQuery selects posted journal lines of a tenant within an inclusive date range.
type LineQuery struct {
	TenantID  string
	From      time.Time
	To        time.Time
	AccountID *string
}

// ReportingReader defines the reads aggregation needs.
type ReportingReader interface {
	// ListOpeningBalances returns the balances carried into a fiscal year.
	ListOpeningBalances(ctx context.Context, tenantID string, fiscalYear int) ([]domain.OpeningBalance, error)

	// ListPostedLines returns lines of POSTED and REVERSED entries dated in the range.
	ListPostedLines(ctx context.Context, q LineQuery) ([]domain.JournalLine, error)
}

// ReportingWriter stores opening balances.
type ReportingWriter interface {
	// ReplaceOpeningBalances replaces every opening balance of the fiscal year.
	ReplaceOpeningBalances(ctx context.Context, tenantID string, fiscalYear int, balances []domain.OpeningBalance, userID string) error
}

// ReportingRepositoryFacade combines reporting repository interfaces
type ReportingRepositoryFacade interface {
	ReportingReader
	ReportingWriter
}
