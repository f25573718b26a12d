package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/mapping"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/pagination"
)

const entryColumns = `entry_id, tenant_id, period_id, entry_date, status, source, description,
	invoice_id, original_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, tenant_id, account_id, debit, credit, notes, line_no`

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.PeriodID,
		&m.EntryDate,
		&m.Status,
		&m.Source,
		&m.Description,
		&m.InvoiceID,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertEntry writes the header and its lines inside tx.
func (r *PgxJournalRepository) insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.TenantID,
		m.PeriodID,
		m.EntryDate,
		m.Status,
		m.Source,
		m.Description,
		m.InvoiceID,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "journal entry "+m.EntryID)
	}

	lineQuery := `INSERT INTO journal_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	batch := &pgx.Batch{}
	for i, l := range lines {
		ml := mapping.ToModelJournalLine(entry.TenantID, i+1, l)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.TenantID,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.Notes,
			ml.LineNo,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateError(err, "lines of journal entry "+m.EntryID)
	}
	return nil
}

// SaveEntry inserts the entry and its lines once the period is confirmed open
// and every line account still accepts postings.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.requireWritablePeriod(ctx, tx, entry.TenantID, entry.PeriodID); err != nil {
		return err
	}
	accountIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	if err := r.requirePostableAccounts(ctx, tx, entry.TenantID, accountIDs); err != nil {
		return err
	}
	if err := r.insertEntry(ctx, tx, entry, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// PostDraft flips a DRAFT entry to POSTED.
func (r *PgxJournalRepository) PostDraft(ctx context.Context, tenantID, entryID, periodID, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.requireWritablePeriod(ctx, tx, tenantID, periodID); err != nil {
		return err
	}
	rows, err := tx.Query(ctx, `SELECT DISTINCT account_id FROM journal_lines WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID)
	if err != nil {
		return translateError(err, "lines of journal entry "+entryID)
	}
	accountIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return translateError(err, "lines of journal entry "+entryID)
	}
	if err := r.requirePostableAccounts(ctx, tx, tenantID, accountIDs); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET status = $4, period_id = $3, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $7;
	`
	cmdTag, err := tx.Exec(ctx, query, tenantID, entryID, periodID,
		string(domain.EntryPosted), now, userID, string(domain.EntryDraft))
	if err != nil {
		return translateError(err, "journal entry "+entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is no longer a draft", apperrors.ErrConflict, entryID)
	}
	return r.Commit(ctx, tx)
}

// SaveReversal writes the reversing entry and links both entries. The
// original is locked so that two concurrent reversals cannot both succeed.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine) error {
	if reversal.OriginalEntryID == nil {
		return fmt.Errorf("%w: reversal without original entry", apperrors.ErrValidation)
	}
	originalID := *reversal.OriginalEntryID

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.requireWritablePeriod(ctx, tx, reversal.TenantID, reversal.PeriodID); err != nil {
		return err
	}

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`,
		reversal.TenantID, originalID,
	).Scan(&status)
	if err != nil {
		return translateError(err, "journal entry "+originalID)
	}
	if domain.EntryStatus(status) != domain.EntryPosted {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, originalID, status)
	}

	if err := r.insertEntry(ctx, tx, reversal, lines); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3, reversing_entry_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND entry_id = $2;
	`, reversal.TenantID, originalID, string(domain.EntryReversed), reversal.EntryID, reversal.CreatedAt, reversal.CreatedBy)
	if err != nil {
		return translateError(err, "journal entry "+originalID)
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry together with its lines in entry order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		return nil, translateError(err, "journal entry "+entryID)
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT `+lineColumns+` FROM journal_lines WHERE tenant_id = $1 AND entry_id = $2 ORDER BY line_no;`,
		tenantID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines of journal entry "+entryID, err)
	}
	defer rows.Close()

	entry := mapping.ToDomainJournalEntry(m)
	for rows.Next() {
		var ml models.JournalLine
		if err := rows.Scan(&ml.LineID, &ml.EntryID, &ml.TenantID, &ml.AccountID, &ml.Debit, &ml.Credit, &ml.Notes, &ml.LineNo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		entry.Lines = append(entry.Lines, mapping.ToDomainJournalLine(ml))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal lines", err)
	}
	return &entry, nil
}

// ListEntries pages through entry headers, newest first. Lines are not loaded.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	addArg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.From != nil {
		conditions = append(conditions, "entry_date >= "+addArg(domain.DateOnly(*filter.From)))
	}
	if filter.To != nil {
		conditions = append(conditions, "entry_date <= "+addArg(domain.DateOnly(*filter.To)))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+addArg(string(*filter.Status)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %s", apperrors.ErrValidation, err.Error())
		}
		conditions = append(conditions, fmt.Sprintf("(entry_date, created_at, entry_id) < (%s, %s, %s)",
			addArg(cursor.EntryDate), addArg(cursor.CreatedAt), addArg(cursor.EntryID)))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT ` + addArg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries of tenant "+tenantID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeEntryToken(pagination.EntryCursor{
			EntryDate: last.EntryDate,
			CreatedAt: last.CreatedAt,
			EntryID:   last.EntryID,
		})
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}
