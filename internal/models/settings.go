package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxSettings represents a row of the tax_settings table. Rates are stored
// as fractions, caps and floors as multiples of MZP.
type TaxSettings struct {
	TenantID                  string          `db:"tenant_id"`
	Year                      int             `db:"year"`
	MRP                       decimal.Decimal `db:"mrp"`
	MZP                       decimal.Decimal `db:"mzp"`
	OPVRate                   decimal.Decimal `db:"opv_rate"`
	OPVCapMZP                 decimal.Decimal `db:"opv_cap_mzp"`
	VOSMSEmployeeRate         decimal.Decimal `db:"vosms_employee_rate"`
	StandardDeductionMRP      decimal.Decimal `db:"standard_deduction_mrp"`
	IPNRateResident           decimal.Decimal `db:"ipn_rate_resident"`
	IPNRateNonResident        decimal.Decimal `db:"ipn_rate_non_resident"`
	SocialContributionsRate   decimal.Decimal `db:"social_contributions_rate"`
	SocialContributionsMinMZP decimal.Decimal `db:"social_contributions_min_mzp"`
	SocialContributionsMaxMZP decimal.Decimal `db:"social_contributions_max_mzp"`
	SocialTaxRate             decimal.Decimal `db:"social_tax_rate"`
	VOSMSEmployerRate         decimal.Decimal `db:"vosms_employer_rate"`
	UpdatedAt                 time.Time       `db:"updated_at"`
	UpdatedBy                 string          `db:"updated_by"`
}

// AccountMapping represents a row of the account_mappings table.
type AccountMapping struct {
	TenantID   string    `db:"tenant_id"`
	MappingKey string    `db:"mapping_key"`
	AccountID  string    `db:"account_id"`
	UpdatedAt  time.Time `db:"updated_at"`
	UpdatedBy  string    `db:"updated_by"`
}
