package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/mapping"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

func (r *reportingRepository) ListOpeningBalances(ctx context.Context, tenantID string, fiscalYear int) ([]domain.OpeningBalance, error) {
	query := `
		SELECT tenant_id, account_id, fiscal_year, opening_debit, opening_credit
		FROM opening_balances
		WHERE tenant_id = $1 AND fiscal_year = $2
		ORDER BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("error querying opening balances: %w", err)
	}
	defer rows.Close()

	var result []domain.OpeningBalance
	for rows.Next() {
		var m models.OpeningBalance
		if err := rows.Scan(&m.TenantID, &m.AccountID, &m.FiscalYear, &m.OpeningDebit, &m.OpeningCredit); err != nil {
			return nil, fmt.Errorf("error scanning opening balance row: %w", err)
		}
		result = append(result, mapping.ToDomainOpeningBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opening balance rows: %w", err)
	}
	return result, nil
}

// ListPostedLines returns the lines of POSTED and REVERSED entries. A reversed
// entry keeps counting because its reversal carries the offsetting lines.
func (r *reportingRepository) ListPostedLines(ctx context.Context, q portsrepo.LineQuery) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.notes
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1
			AND e.status IN ('POSTED', 'REVERSED')
			AND e.entry_date >= $2
			AND e.entry_date <= $3
			AND ($4::text IS NULL OR l.account_id = $4)
		ORDER BY e.entry_date, e.created_at, l.line_no;
	`
	var accountID *string
	if q.AccountID != nil && *q.AccountID != "" {
		accountID = q.AccountID
	}

	rows, err := r.Pool.Query(ctx, query, q.TenantID, domain.DateOnly(q.From), domain.DateOnly(q.To), accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying posted lines: %w", err)
	}
	defer rows.Close()

	var result []domain.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Notes); err != nil {
			return nil, fmt.Errorf("error scanning posted line: %w", err)
		}
		result = append(result, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted lines: %w", err)
	}
	return result, nil
}

// ReplaceOpeningBalances swaps the fiscal year's opening balances in one transaction.
func (r *reportingRepository) ReplaceOpeningBalances(ctx context.Context, tenantID string, fiscalYear int, balances []domain.OpeningBalance, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM opening_balances WHERE tenant_id = $1 AND fiscal_year = $2;`, tenantID, fiscalYear); err != nil {
		return apperrors.NewAppError(500, "failed to clear opening balances", err)
	}

	query := `
		INSERT INTO opening_balances (tenant_id, account_id, fiscal_year, opening_debit, opening_credit,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6, NOW(), $6);
	`
	batch := &pgx.Batch{}
	for _, b := range balances {
		batch.Queue(query, tenantID, b.AccountID, fiscalYear, b.OpeningDebit, b.OpeningCredit, userID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateError(err, fmt.Sprintf("opening balances %d", fiscalYear))
	}
	return r.Commit(ctx, tx)
}
