package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxSettings are the statutory rates and reference amounts for one tax year.
// Rates are fractions (0.1 == 10%).
type TaxSettings struct {
	Year                      int             `json:"year" validate:"required,min=2000,max=2100"`
	MRP                       decimal.Decimal `json:"mrp"`
	MZP                       decimal.Decimal `json:"mzp"`
	OPVRate                   decimal.Decimal `json:"opvRate"`
	OPVCapMZP                 decimal.Decimal `json:"opvCapMzp"`
	VOSMSEmployeeRate         decimal.Decimal `json:"vosmsEmployeeRate"`
	StandardDeductionMRP      decimal.Decimal `json:"standardDeductionMrp"`
	IPNRateResident           decimal.Decimal `json:"ipnRateResident"`
	IPNRateNonResident        decimal.Decimal `json:"ipnRateNonResident"`
	SocialContributionsRate   decimal.Decimal `json:"socialContributionsRate"`
	SocialContributionsMinMZP decimal.Decimal `json:"socialContributionsMinMzp"`
	SocialContributionsMaxMZP decimal.Decimal `json:"socialContributionsMaxMzp"`
	SocialTaxRate             decimal.Decimal `json:"socialTaxRate"`
	VOSMSEmployerRate         decimal.Decimal `json:"vosmsEmployerRate"`
}

// EmploymentFlags switch individual withholdings and contributions on or off
// for an employee category.
type EmploymentFlags struct {
	OPV                 bool `json:"opv"`
	VOSMSEmployee       bool `json:"vosmsEmployee"`
	StandardDeduction   bool `json:"standardDeduction"`
	SocialContributions bool `json:"socialContributions"`
	SocialTax           bool `json:"socialTax"`
	VOSMSEmployer       bool `json:"vosmsEmployer"`
}

// StandardFlags applies to a regular resident employee.
func StandardFlags() EmploymentFlags {
	return EmploymentFlags{
		OPV:                 true,
		VOSMSEmployee:       true,
		StandardDeduction:   true,
		SocialContributions: true,
		SocialTax:           true,
		VOSMSEmployer:       true,
	}
}

// PensionerFlags applies to a working pensioner: no pension or medical
// insurance contributions, social tax still due.
func PensionerFlags() EmploymentFlags {
	return EmploymentFlags{
		StandardDeduction: true,
		SocialTax:         true,
	}
}

// NonResidentFlags applies to a foreign non-resident employee.
func NonResidentFlags() EmploymentFlags {
	return EmploymentFlags{
		SocialTax: true,
	}
}

// FlagsForPreset returns the preset by name and whether it exists.
func FlagsForPreset(name string) (EmploymentFlags, bool) {
	switch name {
	case "", "standard":
		return StandardFlags(), true
	case "pensioner":
		return PensionerFlags(), true
	case "non_resident":
		return NonResidentFlags(), true
	}
	return EmploymentFlags{}, false
}

// PayrollCalculation is the per-employee result of a tax computation. It is
// informational; the generated journal entry is the authoritative record.
type PayrollCalculation struct {
	Gross               decimal.Decimal `json:"gross"`
	Adjusted            decimal.Decimal `json:"adjusted"`
	OPV                 decimal.Decimal `json:"opv"`
	VOSMSEmployee       decimal.Decimal `json:"vosmsEmployee"`
	StandardDeduction   decimal.Decimal `json:"standardDeduction"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	IPN                 decimal.Decimal `json:"ipn"`
	NetSalary           decimal.Decimal `json:"netSalary"`
	SocialTaxBase       decimal.Decimal `json:"socialTaxBase"`
	SocialContributions decimal.Decimal `json:"socialContributions"`
	SocialTax           decimal.Decimal `json:"socialTax"`
	VOSMSEmployer       decimal.Decimal `json:"vosmsEmployer"`
	TotalEmployerCost   decimal.Decimal `json:"totalEmployerCost"`
}

// Add returns the component-wise sum of two calculations.
func (c PayrollCalculation) Add(o PayrollCalculation) PayrollCalculation {
	return PayrollCalculation{
		Gross:               c.Gross.Add(o.Gross),
		Adjusted:            c.Adjusted.Add(o.Adjusted),
		OPV:                 c.OPV.Add(o.OPV),
		VOSMSEmployee:       c.VOSMSEmployee.Add(o.VOSMSEmployee),
		StandardDeduction:   c.StandardDeduction.Add(o.StandardDeduction),
		TaxableIncome:       c.TaxableIncome.Add(o.TaxableIncome),
		IPN:                 c.IPN.Add(o.IPN),
		NetSalary:           c.NetSalary.Add(o.NetSalary),
		SocialTaxBase:       c.SocialTaxBase.Add(o.SocialTaxBase),
		SocialContributions: c.SocialContributions.Add(o.SocialContributions),
		SocialTax:           c.SocialTax.Add(o.SocialTax),
		VOSMSEmployer:       c.VOSMSEmployer.Add(o.VOSMSEmployer),
		TotalEmployerCost:   c.TotalEmployerCost.Add(o.TotalEmployerCost),
	}
}

// Payroll account mapping keys.
const (
	MappingSalaryExpense       = "salary_expense"
	MappingSalaryPayable       = "salary_payable"
	MappingOPV                 = "opv_payable"
	MappingVOSMS               = "vosms_payable"
	MappingIPN                 = "ipn_payable"
	MappingSocialTax           = "social_tax_payable"
	MappingSocialContributions = "social_contributions_payable"
)

// MappingOtherIncome overrides the revenue account credited by income without an invoice or counter account.
const MappingOtherIncome = "other_income"

// IsMappingKey reports whether key is a known account mapping key.
func IsMappingKey(key string) bool {
	if key == MappingOtherIncome {
		return true
	}
	for _, k := range PayrollMappingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// PayrollMappingKeys lists every mapping payroll posting requires, in line order.
var PayrollMappingKeys = []string{
	MappingSalaryExpense,
	MappingSalaryPayable,
	MappingOPV,
	MappingVOSMS,
	MappingIPN,
	MappingSocialTax,
	MappingSocialContributions,
}

// DefaultPayrollMappingCodes maps each payroll key to its account code in the default chart.
func DefaultPayrollMappingCodes() map[string]string {
	return map[string]string{
		MappingSalaryExpense:       CodeSalaryExpense,
		MappingSalaryPayable:       CodeSalaryPayable,
		MappingOPV:                 CodeOPVPayable,
		MappingVOSMS:               CodeVOSMSPayable,
		MappingIPN:                 CodeIPNPayable,
		MappingSocialTax:           CodeSocialTaxPayable,
		MappingSocialContributions: CodeSocialContributionsPayable,
	}
}

// PayrollAccountMappings resolves each payroll mapping key to an account id.
// An empty value means the mapping is unset.
type PayrollAccountMappings map[string]string

// Missing returns the required keys with no account id, in line order.
func (m PayrollAccountMappings) Missing() []string {
	var missing []string
	for _, key := range PayrollMappingKeys {
		if m[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// EmployeePay is one employee's line in a payroll run.
type EmployeePay struct {
	EmployeeID    string          `json:"employeeID" validate:"required"`
	Gross         decimal.Decimal `json:"gross"`
	IsResident    bool            `json:"isResident"`
	Flags         EmploymentFlags `json:"flags"`
	WorkedDays    *int            `json:"workedDays,omitempty" validate:"omitempty,min=0"`
	TotalWorkDays *int            `json:"totalWorkDays,omitempty" validate:"omitempty,min=1"`
}

// PayrollRun posts the payroll of several employees as one entry dated PayDate.
type PayrollRun struct {
	TenantID    string        `validate:"required"`
	PayDate     time.Time     `validate:"required"`
	Description string        `validate:"max=500"`
	Employees   []EmployeePay `validate:"required,min=1,dive"`
	ActorID     string
}

// PayrollPosting is the outcome of a payroll run.
type PayrollPosting struct {
	Entry        *JournalEntry                 `json:"entry"`
	Calculations map[string]PayrollCalculation `json:"calculations"`
	Total        PayrollCalculation            `json:"total"`
}
