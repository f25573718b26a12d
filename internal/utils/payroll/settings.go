package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// Settings2024 returns the statutory values in force for 2024.
func Settings2024() domain.TaxSettings {
	return domain.TaxSettings{
		Year:                      2024,
		MRP:                       decimal.NewFromInt(3692),
		MZP:                       decimal.NewFromInt(85000),
		OPVRate:                   decimal.RequireFromString("0.10"),
		OPVCapMZP:                 decimal.NewFromInt(50),
		VOSMSEmployeeRate:         decimal.RequireFromString("0.02"),
		StandardDeductionMRP:      decimal.NewFromInt(14),
		IPNRateResident:           decimal.RequireFromString("0.10"),
		IPNRateNonResident:        decimal.RequireFromString("0.10"),
		SocialContributionsRate:   decimal.RequireFromString("0.035"),
		SocialContributionsMinMZP: decimal.NewFromInt(1),
		SocialContributionsMaxMZP: decimal.NewFromInt(7),
		SocialTaxRate:             decimal.RequireFromString("0.095"),
		VOSMSEmployerRate:         decimal.RequireFromString("0.03"),
	}
}

// Settings2025 returns the statutory values in force for 2025.
func Settings2025() domain.TaxSettings {
	s := Settings2024()
	s.Year = 2025
	s.MRP = decimal.NewFromInt(3932)
	s.SocialContributionsRate = decimal.RequireFromString("0.05")
	return s
}

// DefaultSettings returns the built-in settings for year. Years without
// built-in values fall back to the closest known year.
func DefaultSettings(year int) domain.TaxSettings {
	if year <= 2024 {
		s := Settings2024()
		s.Year = year
		return s
	}
	s := Settings2025()
	s.Year = year
	return s
}

// ValidateSettings rejects negative amounts and rates outside [0, 1].
func ValidateSettings(s domain.TaxSettings) error {
	amounts := map[string]decimal.Decimal{
		"mrp":                       s.MRP,
		"mzp":                       s.MZP,
		"opvCapMzp":                 s.OPVCapMZP,
		"standardDeductionMrp":      s.StandardDeductionMRP,
		"socialContributionsMinMzp": s.SocialContributionsMinMZP,
		"socialContributionsMaxMzp": s.SocialContributionsMaxMZP,
	}
	for name, v := range amounts {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
		}
	}
	if s.MZP.IsZero() || s.MRP.IsZero() {
		return fmt.Errorf("%w: mrp and mzp must be positive", apperrors.ErrValidation)
	}
	if s.SocialContributionsMinMZP.GreaterThan(s.SocialContributionsMaxMZP) {
		return fmt.Errorf("%w: social contributions minimum exceeds maximum", apperrors.ErrValidation)
	}

	rates := map[string]decimal.Decimal{
		"opvRate":                 s.OPVRate,
		"vosmsEmployeeRate":       s.VOSMSEmployeeRate,
		"ipnRateResident":         s.IPNRateResident,
		"ipnRateNonResident":      s.IPNRateNonResident,
		"socialContributionsRate": s.SocialContributionsRate,
		"socialTaxRate":           s.SocialTaxRate,
		"vosmsEmployerRate":       s.VOSMSEmployerRate,
	}
	one := decimal.NewFromInt(1)
	for name, v := range rates {
		if v.IsNegative() || v.GreaterThan(one) {
			return fmt.Errorf("%w: %s must be between 0 and 1", apperrors.ErrValidation, name)
		}
	}
	return nil
}
