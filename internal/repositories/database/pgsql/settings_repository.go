package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/mapping"
)

const taxSettingsColumns = `tenant_id, year, mrp, mzp, opv_rate, opv_cap_mzp, vosms_employee_rate,
	standard_deduction_mrp, ipn_rate_resident, ipn_rate_non_resident, social_contributions_rate,
	social_contributions_min_mzp, social_contributions_max_mzp, social_tax_rate, vosms_employer_rate`

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindTaxSettings(ctx context.Context, tenantID string, year int) (*domain.TaxSettings, error) {
	query := `SELECT ` + taxSettingsColumns + ` FROM tax_settings WHERE tenant_id = $1 AND year = $2;`

	var m models.TaxSettings
	err := r.Pool.QueryRow(ctx, query, tenantID, year).Scan(
		&m.TenantID,
		&m.Year,
		&m.MRP,
		&m.MZP,
		&m.OPVRate,
		&m.OPVCapMZP,
		&m.VOSMSEmployeeRate,
		&m.StandardDeductionMRP,
		&m.IPNRateResident,
		&m.IPNRateNonResident,
		&m.SocialContributionsRate,
		&m.SocialContributionsMinMZP,
		&m.SocialContributionsMaxMZP,
		&m.SocialTaxRate,
		&m.VOSMSEmployerRate,
	)
	if err != nil {
		return nil, translateError(err, "tax settings "+strconv.Itoa(year))
	}
	settings := mapping.ToDomainTaxSettings(m)
	return &settings, nil
}

func (r *PgxSettingsRepository) SaveTaxSettings(ctx context.Context, tenantID string, settings domain.TaxSettings, userID string) error {
	m := mapping.ToModelTaxSettings(tenantID, settings)
	query := `
		INSERT INTO tax_settings (` + taxSettingsColumns + `, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), $16)
		ON CONFLICT (tenant_id, year) DO UPDATE SET
			mrp = EXCLUDED.mrp,
			mzp = EXCLUDED.mzp,
			opv_rate = EXCLUDED.opv_rate,
			opv_cap_mzp = EXCLUDED.opv_cap_mzp,
			vosms_employee_rate = EXCLUDED.vosms_employee_rate,
			standard_deduction_mrp = EXCLUDED.standard_deduction_mrp,
			ipn_rate_resident = EXCLUDED.ipn_rate_resident,
			ipn_rate_non_resident = EXCLUDED.ipn_rate_non_resident,
			social_contributions_rate = EXCLUDED.social_contributions_rate,
			social_contributions_min_mzp = EXCLUDED.social_contributions_min_mzp,
			social_contributions_max_mzp = EXCLUDED.social_contributions_max_mzp,
			social_tax_rate = EXCLUDED.social_tax_rate,
			vosms_employer_rate = EXCLUDED.vosms_employer_rate,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.Year,
		m.MRP,
		m.MZP,
		m.OPVRate,
		m.OPVCapMZP,
		m.VOSMSEmployeeRate,
		m.StandardDeductionMRP,
		m.IPNRateResident,
		m.IPNRateNonResident,
		m.SocialContributionsRate,
		m.SocialContributionsMinMZP,
		m.SocialContributionsMaxMZP,
		m.SocialTaxRate,
		m.VOSMSEmployerRate,
		userID,
	)
	if err != nil {
		return translateError(err, "tax settings "+strconv.Itoa(settings.Year))
	}
	return nil
}

func (r *PgxSettingsRepository) FindAccountMappings(ctx context.Context, tenantID string) (map[string]string, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT mapping_key, account_id FROM account_mappings WHERE tenant_id = $1;`, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account mappings", err)
	}
	defer rows.Close()

	mappings := make(map[string]string)
	for rows.Next() {
		var m models.AccountMapping
		if err := rows.Scan(&m.MappingKey, &m.AccountID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account mapping", err)
		}
		mappings[m.MappingKey] = m.AccountID
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account mappings", err)
	}
	return mappings, nil
}

func (r *PgxSettingsRepository) SaveAccountMapping(ctx context.Context, tenantID, key, accountID, userID string) error {
	query := `
		INSERT INTO account_mappings (tenant_id, mapping_key, account_id, updated_at, updated_by)
		VALUES ($1, $2, $3, NOW(), $4)
		ON CONFLICT (tenant_id, mapping_key) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	if _, err := r.Pool.Exec(ctx, query, tenantID, key, accountID, userID); err != nil {
		return translateError(err, "account mapping "+key)
	}
	return nil
}
