package pgsql

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/mapping"
)

const periodColumns = `period_id, tenant_id, name, start_date, end_date, status, closed_by, closed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.TenantID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedBy,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectPeriods(rows pgx.Rows) ([]domain.Period, error) {
	defer rows.Close()
	var periods []domain.Period
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return periods, nil
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE tenant_id = $1 AND period_id = $2;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, periodID))
	if err != nil {
		return nil, translateError(err, "period "+periodID)
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

// FindPeriodForDate returns the period whose inclusive range covers date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods
		WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, domain.DateOnly(date)))
	if err != nil {
		return nil, translateError(err, "period for "+date.Format(time.DateOnly))
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE tenant_id = $1 ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods of tenant "+tenantID, err)
	}
	return collectPeriods(rows)
}

// lockedPeriods takes the tenant lock and returns every period row locked FOR UPDATE.
func (r *PgxPeriodRepository) lockedPeriods(ctx context.Context, tx pgx.Tx, tenantID string) ([]domain.Period, error) {
	if err := r.lockTenantPeriods(ctx, tx, tenantID); err != nil {
		return nil, err
	}
	query := `SELECT ` + periodColumns + ` FROM periods WHERE tenant_id = $1 ORDER BY start_date FOR UPDATE;`
	rows, err := tx.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock periods of tenant "+tenantID, err)
	}
	return collectPeriods(rows)
}

// CreatePeriods inserts the planned periods that do not exist yet and applies
// status changes to the ones that do, all in one transaction.
func (r *PgxPeriodRepository) CreatePeriods(ctx context.Context, tenantID string, plan portsrepo.PeriodPlanner) ([]domain.Period, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockedPeriods(ctx, tx, tenantID)
	if err != nil {
		return nil, err
	}
	planned, err := plan(current)
	if err != nil {
		return nil, err
	}
	if len(planned) == 0 {
		return planned, nil
	}

	existing := make(map[string]bool, len(current))
	for _, p := range current {
		existing[p.PeriodID] = true
	}

	insertQuery := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, p := range openLast(planned) {
		if existing[p.PeriodID] {
			queueStatusUpdate(batch, p)
			continue
		}
		m := mapping.ToModelPeriod(p)
		batch.Queue(insertQuery,
			m.PeriodID,
			m.TenantID,
			m.Name,
			m.StartDate,
			m.EndDate,
			m.Status,
			m.ClosedBy,
			m.ClosedAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, translateError(err, "periods of tenant "+tenantID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return planned, nil
}

func (r *PgxPeriodRepository) TransitionPeriods(ctx context.Context, tenantID string, plan portsrepo.PeriodPlanner) ([]domain.Period, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockedPeriods(ctx, tx, tenantID)
	if err != nil {
		return nil, err
	}
	changed, err := plan(current)
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		return changed, nil
	}

	batch := &pgx.Batch{}
	for _, p := range openLast(changed) {
		queueStatusUpdate(batch, p)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, translateError(err, "period transition of tenant "+tenantID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return changed, nil
}

// openLast orders closes before the open. The partial unique index on OPEN
// admits one open period per tenant.
func openLast(periods []domain.Period) []domain.Period {
	ordered := make([]domain.Period, len(periods))
	copy(ordered, periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Status != domain.PeriodOpen && ordered[j].Status == domain.PeriodOpen
	})
	return ordered
}

func queueStatusUpdate(batch *pgx.Batch, p domain.Period) {
	query := `
		UPDATE periods
		SET status = $3, closed_by = $4, closed_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND period_id = $2;
	`
	m := mapping.ToModelPeriod(p)
	batch.Queue(query,
		m.TenantID,
		m.PeriodID,
		m.Status,
		m.ClosedBy,
		m.ClosedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}
