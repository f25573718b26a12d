package payroll

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(i int) *int { return &i }

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func fullMappings() domain.PayrollAccountMappings {
	return domain.PayrollAccountMappings{
		domain.MappingSalaryExpense:       "acc-7210",
		domain.MappingSalaryPayable:       "acc-3350",
		domain.MappingOPV:                 "acc-3220",
		domain.MappingVOSMS:               "acc-3212",
		domain.MappingIPN:                 "acc-3120",
		domain.MappingSocialTax:           "acc-3150",
		domain.MappingSocialContributions: "acc-3211",
	}
}

func TestCalculate_Resident2024(t *testing.T) {
	calc, err := Calculate(CalculationInput{
		Gross:      dec("100000"),
		IsResident: true,
		Flags:      domain.StandardFlags(),
		Settings:   Settings2024(),
	})
	require.NoError(t, err)

	assertDec(t, "100000", calc.Adjusted, "adjusted")
	assertDec(t, "10000", calc.OPV, "opv")
	assertDec(t, "2000", calc.VOSMSEmployee, "vosmsEmployee")
	assertDec(t, "51688", calc.StandardDeduction, "standardDeduction")
	assertDec(t, "38312", calc.TaxableIncome, "taxableIncome")
	assertDec(t, "3831", calc.IPN, "ipn")
	assertDec(t, "84169", calc.NetSalary, "netSalary")
	assertDec(t, "90000", calc.SocialTaxBase, "socialTaxBase")
	assertDec(t, "3500", calc.SocialContributions, "socialContributions")
	assertDec(t, "5050", calc.SocialTax, "socialTax")
	assertDec(t, "3000", calc.VOSMSEmployer, "vosmsEmployer")
	assertDec(t, "111550", calc.TotalEmployerCost, "totalEmployerCost")
}

func TestCalculate_Resident2025(t *testing.T) {
	calc, err := Calculate(CalculationInput{
		Gross:      dec("100000"),
		IsResident: true,
		Flags:      domain.StandardFlags(),
		Settings:   Settings2025(),
	})
	require.NoError(t, err)

	assertDec(t, "55048", calc.StandardDeduction, "standardDeduction")
	assertDec(t, "34952", calc.TaxableIncome, "taxableIncome")
	assertDec(t, "3495", calc.IPN, "ipn")
	assertDec(t, "84505", calc.NetSalary, "netSalary")
	assertDec(t, "5000", calc.SocialContributions, "socialContributions")
	assertDec(t, "3550", calc.SocialTax, "socialTax")
	assertDec(t, "111550", calc.TotalEmployerCost, "totalEmployerCost")
}

func TestCalculate_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    CalculationInput
		expected map[string]string
	}{
		{
			name:  "opv capped at fifty mzp and contributions at seven mzp",
			input: CalculationInput{Gross: dec("5000000"), IsResident: true, Flags: domain.StandardFlags(), Settings: Settings2024()},
			expected: map[string]string{
				"opv":                 "425000",
				"socialContributions": "20825",
			},
		},
		{
			name:  "contributions base raised to one mzp",
			input: CalculationInput{Gross: dec("50000"), IsResident: true, Flags: domain.StandardFlags(), Settings: Settings2024()},
			expected: map[string]string{
				"socialContributions": "2975",
				"socialTax":           "1300",
				"taxableIncome":       "0",
				"ipn":                 "0",
			},
		},
		{
			name:  "social tax floored after subtracting contributions",
			input: CalculationInput{Gross: dec("20000"), IsResident: true, Flags: domain.StandardFlags(), Settings: Settings2024()},
			expected: map[string]string{
				"socialContributions": "2975",
				"socialTax":           "0",
			},
		},
		{
			name:  "half tenge rounds away from zero",
			input: CalculationInput{Gross: dec("100005"), IsResident: true, Flags: domain.StandardFlags(), Settings: Settings2024()},
			expected: map[string]string{
				"opv": "10001",
			},
		},
		{
			name: "pro-rated by worked days",
			input: CalculationInput{Gross: dec("100000"), IsResident: true, Flags: domain.StandardFlags(), Settings: Settings2024(),
				WorkedDays: intPtr(7), TotalWorkDays: intPtr(21)},
			expected: map[string]string{
				"adjusted": "33333",
				"opv":      "3333",
			},
		},
		{
			name: "only one of the day counts is ignored",
			input: CalculationInput{Gross: dec("100000"), IsResident: true, Flags: domain.StandardFlags(), Settings: Settings2024(),
				WorkedDays: intPtr(7)},
			expected: map[string]string{
				"adjusted": "100000",
			},
		},
		{
			name:  "non-resident gets no standard deduction",
			input: CalculationInput{Gross: dec("100000"), IsResident: false, Flags: domain.StandardFlags(), Settings: Settings2024()},
			expected: map[string]string{
				"standardDeduction": "0",
				"taxableIncome":     "90000",
				"ipn":               "9000",
			},
		},
		{
			name:  "pensioner",
			input: CalculationInput{Gross: dec("100000"), IsResident: true, Flags: domain.PensionerFlags(), Settings: Settings2024()},
			expected: map[string]string{
				"opv":                 "0",
				"vosmsEmployee":       "0",
				"taxableIncome":       "48312",
				"ipn":                 "4831",
				"netSalary":           "95169",
				"socialContributions": "0",
				"socialTax":           "9500",
				"vosmsEmployer":       "0",
				"totalEmployerCost":   "109500",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := Calculate(tt.input)
			require.NoError(t, err)

			fields := map[string]decimal.Decimal{
				"adjusted":            calc.Adjusted,
				"opv":                 calc.OPV,
				"vosmsEmployee":       calc.VOSMSEmployee,
				"standardDeduction":   calc.StandardDeduction,
				"taxableIncome":       calc.TaxableIncome,
				"ipn":                 calc.IPN,
				"netSalary":           calc.NetSalary,
				"socialContributions": calc.SocialContributions,
				"socialTax":           calc.SocialTax,
				"vosmsEmployer":       calc.VOSMSEmployer,
				"totalEmployerCost":   calc.TotalEmployerCost,
			}
			for field, want := range tt.expected {
				assertDec(t, want, fields[field], field)
			}
		})
	}
}

func TestCalculate_Validation(t *testing.T) {
	_, err := Calculate(CalculationInput{Gross: dec("-1"), Flags: domain.StandardFlags(), Settings: Settings2024()})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = Calculate(CalculationInput{Gross: dec("1000"), Flags: domain.StandardFlags(), Settings: Settings2024(),
		WorkedDays: intPtr(23), TotalWorkDays: intPtr(22)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	bad := Settings2024()
	bad.OPVRate = dec("1.5")
	_, err = Calculate(CalculationInput{Gross: dec("1000"), Flags: domain.StandardFlags(), Settings: bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDefaultSettings(t *testing.T) {
	assert.True(t, DefaultSettings(2024).MRP.Equal(dec("3692")))
	assert.True(t, DefaultSettings(2025).MRP.Equal(dec("3932")))
	assert.Equal(t, 2026, DefaultSettings(2026).Year)
	assert.True(t, DefaultSettings(2026).SocialContributionsRate.Equal(dec("0.05")))
}

func TestGeneratePayrollJournalLines(t *testing.T) {
	calc, err := Calculate(CalculationInput{Gross: dec("100000"), IsResident: true, Flags: domain.StandardFlags(), Settings: Settings2024()})
	require.NoError(t, err)

	lines, err := GeneratePayrollJournalLines(calc, fullMappings())
	require.NoError(t, err)
	require.Len(t, lines, 7)

	assert.Equal(t, "acc-7210", lines[0].AccountID)
	assertDec(t, "111550", lines[0].Debit, "salary expense")

	credits := map[string]string{}
	for _, l := range lines[1:] {
		assert.True(t, l.Debit.IsZero())
		credits[l.AccountID] = l.Credit.String()
	}
	assert.Equal(t, map[string]string{
		"acc-3350": "84169",
		"acc-3220": "10000",
		"acc-3212": "5000",
		"acc-3120": "3831",
		"acc-3150": "5050",
		"acc-3211": "3500",
	}, credits)
	assert.NoError(t, domain.CheckBalanced(lines))
}

func TestGeneratePayrollJournalLines_SkipsZeroComponents(t *testing.T) {
	calc, err := Calculate(CalculationInput{Gross: dec("100000"), IsResident: true, Flags: domain.PensionerFlags(), Settings: Settings2024()})
	require.NoError(t, err)

	lines, err := GeneratePayrollJournalLines(calc, fullMappings())
	require.NoError(t, err)
	assert.Len(t, lines, 4)
}

func TestGeneratePayrollJournalLines_MissingMappings(t *testing.T) {
	mappings := domain.PayrollAccountMappings{
		domain.MappingSalaryExpense: "acc-7210",
		domain.MappingOPV:           "acc-3220",
	}

	lines, err := GeneratePayrollJournalLines(domain.PayrollCalculation{}, mappings)

	assert.Nil(t, lines)
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
	var cfgErr *apperrors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{
		domain.MappingSalaryPayable,
		domain.MappingVOSMS,
		domain.MappingIPN,
		domain.MappingSocialTax,
		domain.MappingSocialContributions,
	}, cfgErr.Keys)
	assert.Equal(t, apperrors.RemediationAccountMappings, cfgErr.Remediation)
}

func TestGeneratePayrollJournalLines_Unbalanced(t *testing.T) {
	calc := domain.PayrollCalculation{
		TotalEmployerCost: dec("1000"),
		NetSalary:         dec("900"),
	}

	_, err := GeneratePayrollJournalLines(calc, fullMappings())

	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
}
