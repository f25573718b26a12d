package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// CalculationInput is everything Calculate needs for one employee and period.
// WorkedDays and TotalWorkDays pro-rate the gross only when both are set.
type CalculationInput struct {
	Gross         decimal.Decimal
	IsResident    bool
	Flags         domain.EmploymentFlags
	Settings      domain.TaxSettings
	WorkedDays    *int
	TotalWorkDays *int
}

// round rounds to whole tenge, half away from zero.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Calculate computes withholdings and employer contributions. Every step
// rounds its own result, and later steps use the rounded values.
func Calculate(in CalculationInput) (domain.PayrollCalculation, error) {
	if in.Gross.IsNegative() {
		return domain.PayrollCalculation{}, fmt.Errorf("%w: gross must not be negative", apperrors.ErrValidation)
	}
	if err := ValidateSettings(in.Settings); err != nil {
		return domain.PayrollCalculation{}, err
	}
	s := in.Settings

	adjusted := in.Gross
	if in.WorkedDays != nil && in.TotalWorkDays != nil {
		worked, total := *in.WorkedDays, *in.TotalWorkDays
		if total <= 0 || worked < 0 || worked > total {
			return domain.PayrollCalculation{}, fmt.Errorf("%w: worked days %d out of %d", apperrors.ErrValidation, worked, total)
		}
		adjusted = round(in.Gross.Mul(decimal.NewFromInt(int64(worked))).Div(decimal.NewFromInt(int64(total))))
	}

	opv := decimal.Zero
	if in.Flags.OPV {
		base := decimal.Min(adjusted, s.MZP.Mul(s.OPVCapMZP))
		opv = round(base.Mul(s.OPVRate))
	}

	vosmsEmployee := decimal.Zero
	if in.Flags.VOSMSEmployee {
		vosmsEmployee = round(adjusted.Mul(s.VOSMSEmployeeRate))
	}

	standardDeduction := decimal.Zero
	if in.Flags.StandardDeduction && in.IsResident {
		standardDeduction = s.MRP.Mul(s.StandardDeductionMRP)
	}

	taxable := decimal.Max(decimal.Zero, adjusted.Sub(opv).Sub(standardDeduction))

	ipnRate := s.IPNRateNonResident
	if in.IsResident {
		ipnRate = s.IPNRateResident
	}
	ipn := decimal.Max(decimal.Zero, round(taxable.Mul(ipnRate)))

	net := adjusted.Sub(opv).Sub(vosmsEmployee).Sub(ipn)

	socialTaxBase := adjusted.Sub(opv)
	socialContributions := decimal.Zero
	if in.Flags.SocialContributions {
		base := decimal.Min(decimal.Max(adjusted, s.MZP.Mul(s.SocialContributionsMinMZP)), s.MZP.Mul(s.SocialContributionsMaxMZP))
		socialContributions = round(base.Mul(s.SocialContributionsRate))
	}
	socialTax := decimal.Zero
	if in.Flags.SocialTax {
		// Contributions are deducted before the floor at zero is applied.
		socialTax = decimal.Max(decimal.Zero, round(socialTaxBase.Mul(s.SocialTaxRate)).Sub(socialContributions))
	}

	vosmsEmployer := decimal.Zero
	if in.Flags.VOSMSEmployer {
		vosmsEmployer = round(adjusted.Mul(s.VOSMSEmployerRate))
	}

	return domain.PayrollCalculation{
		Gross:               in.Gross,
		Adjusted:            adjusted,
		OPV:                 opv,
		VOSMSEmployee:       vosmsEmployee,
		StandardDeduction:   standardDeduction,
		TaxableIncome:       taxable,
		IPN:                 ipn,
		NetSalary:           net,
		SocialTaxBase:       socialTaxBase,
		SocialContributions: socialContributions,
		SocialTax:           socialTax,
		VOSMSEmployer:       vosmsEmployer,
		TotalEmployerCost:   adjusted.Add(socialTax).Add(socialContributions).Add(vosmsEmployer),
	}, nil
}
