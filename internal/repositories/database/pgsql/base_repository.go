package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
	pgCheckViolation      = "23514"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// lockTenantPeriods serialises period maintenance of one tenant for the rest
// of the transaction. Row locks alone do not cover a tenant with no periods yet.
func (r *BaseRepository) lockTenantPeriods(ctx context.Context, tx pgx.Tx, tenantID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('periods:' || $1));`, tenantID); err != nil {
		return apperrors.NewAppError(500, "failed to lock periods of tenant "+tenantID, err)
	}
	return nil
}

// requireWritablePeriod re-reads the period status inside tx and holds a share
// lock on the row until commit, so a concurrent close waits for this write.
func (r *BaseRepository) requireWritablePeriod(ctx context.Context, tx pgx.Tx, tenantID, periodID string) error {
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM periods WHERE tenant_id = $1 AND period_id = $2 FOR SHARE;`,
		tenantID, periodID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
		}
		return apperrors.NewAppError(500, "failed to read period "+periodID, err)
	}
	if domain.PeriodStatus(status) != domain.PeriodOpen {
		return apperrors.NewPeriodClosedError(tenantID, periodID, status)
	}
	return nil
}

// requirePostableAccounts re-reads the accounts inside tx and holds a share
// lock on them until commit, so a concurrent deactivation waits for this write.
func (r *BaseRepository) requirePostableAccounts(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) error {
	rows, err := tx.Query(ctx, `
		SELECT account_id FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2) AND is_active AND allow_manual_entry
		FOR SHARE;
	`, tenantID, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to read accounts of tenant "+tenantID, err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return apperrors.NewAppError(500, "failed to read accounts of tenant "+tenantID, err)
	}
	if missing := missingAccounts(accountIDs, found); len(missing) > 0 {
		return fmt.Errorf("%w: accounts %s do not accept postings", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// missingAccounts lists the requested ids absent from found, once each and in
// request order.
func missingAccounts(requested, found []string) []string {
	present := make(map[string]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	var missing []string
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
			present[id] = true
		}
	}
	return missing
}

// translateError maps driver errors onto application errors. what names the
// object involved for the error message.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrConflict, what, pgErr.ConstraintName)
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, what, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, "database error on "+what, err)
}
