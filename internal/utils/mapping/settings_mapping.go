package mapping

import (
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	"github.com/SscSPs/kz_bookkeeping/internal/models"
)

// ToModelTaxSettings converts domain TaxSettings to a tenant row.
func ToModelTaxSettings(tenantID string, d domain.TaxSettings) models.TaxSettings {
	return models.TaxSettings{
		TenantID:                  tenantID,
		Year:                      d.Year,
		MRP:                       d.MRP,
		MZP:                       d.MZP,
		OPVRate:                   d.OPVRate,
		OPVCapMZP:                 d.OPVCapMZP,
		VOSMSEmployeeRate:         d.VOSMSEmployeeRate,
		StandardDeductionMRP:      d.StandardDeductionMRP,
		IPNRateResident:           d.IPNRateResident,
		IPNRateNonResident:        d.IPNRateNonResident,
		SocialContributionsRate:   d.SocialContributionsRate,
		SocialContributionsMinMZP: d.SocialContributionsMinMZP,
		SocialContributionsMaxMZP: d.SocialContributionsMaxMZP,
		SocialTaxRate:             d.SocialTaxRate,
		VOSMSEmployerRate:         d.VOSMSEmployerRate,
	}
}

// ToDomainTaxSettings converts a tenant row to domain TaxSettings.
func ToDomainTaxSettings(m models.TaxSettings) domain.TaxSettings {
	return domain.TaxSettings{
		Year:                      m.Year,
		MRP:                       m.MRP,
		MZP:                       m.MZP,
		OPVRate:                   m.OPVRate,
		OPVCapMZP:                 m.OPVCapMZP,
		VOSMSEmployeeRate:         m.VOSMSEmployeeRate,
		StandardDeductionMRP:      m.StandardDeductionMRP,
		IPNRateResident:           m.IPNRateResident,
		IPNRateNonResident:        m.IPNRateNonResident,
		SocialContributionsRate:   m.SocialContributionsRate,
		SocialContributionsMinMZP: m.SocialContributionsMinMZP,
		SocialContributionsMaxMZP: m.SocialContributionsMaxMZP,
		SocialTaxRate:             m.SocialTaxRate,
		VOSMSEmployerRate:         m.VOSMSEmployerRate,
	}
}

// ToDomainOpeningBalance converts a model OpeningBalance to a domain OpeningBalance
func ToDomainOpeningBalance(m models.OpeningBalance) domain.OpeningBalance {
	return domain.OpeningBalance{
		AccountID:     m.AccountID,
		FiscalYear:    m.FiscalYear,
		OpeningDebit:  m.OpeningDebit,
		OpeningCredit: m.OpeningCredit,
	}
}
