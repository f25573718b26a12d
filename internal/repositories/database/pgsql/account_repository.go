package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/mapping"
)

const accountColumns = `account_id, tenant_id, code, name, account_class, is_current, parent_account_id,
	allow_manual_entry, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.Class,
		&m.IsCurrent,
		&m.ParentAccountID,
		&m.AllowManualEntry,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccounts inserts new accounts. Parents must precede their children in the slice.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, acc := range accounts {
		m := mapping.ToModelAccount(acc)
		batch.Queue(query,
			m.AccountID,
			m.TenantID,
			m.Code,
			m.Name,
			m.Class,
			m.IsCurrent,
			m.ParentAccountID,
			m.AllowManualEntry,
			m.IsActive,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateError(err, fmt.Sprintf("%d accounts", len(accounts)))
	}
	return r.Commit(ctx, tx)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		return nil, translateError(err, "account "+accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		return nil, translateError(err, "account code "+code)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves the tenant's chart ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts of tenant "+tenantID, err)
	}
	defer rows.Close()

	var modelAccounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// UpdateAccount updates the mutable fields of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $3, is_current = $4, parent_account_id = $5, allow_manual_entry = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND account_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.AccountID,
		m.Name,
		m.IsCurrent,
		m.ParentAccountID,
		m.AllowManualEntry,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "account "+m.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND account_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, accountID, now, userID)
	if err != nil {
		return translateError(err, "account "+accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}
