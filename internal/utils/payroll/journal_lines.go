package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// GeneratePayrollJournalLines turns a calculation into one salary expense
// debit and a credit per non-zero liability. Employee and employer medical
// insurance share the VOSMS line. All mappings must be set; the missing ones
// are reported together.
func GeneratePayrollJournalLines(calc domain.PayrollCalculation, mappings domain.PayrollAccountMappings) ([]domain.JournalLine, error) {
	if missing := mappings.Missing(); len(missing) > 0 {
		return nil, apperrors.NewConfigurationError("", missing...)
	}

	lines := []domain.JournalLine{
		domain.DebitLine(mappings[domain.MappingSalaryExpense], calc.TotalEmployerCost, "Salary expense"),
	}

	credits := []struct {
		key    string
		amount decimal.Decimal
		notes  string
	}{
		{domain.MappingSalaryPayable, calc.NetSalary, "Net salary payable"},
		{domain.MappingOPV, calc.OPV, "OPV"},
		{domain.MappingVOSMS, calc.VOSMSEmployee.Add(calc.VOSMSEmployer), "VOSMS"},
		{domain.MappingIPN, calc.IPN, "IPN"},
		{domain.MappingSocialTax, calc.SocialTax, "Social tax"},
		{domain.MappingSocialContributions, calc.SocialContributions, "Social contributions"},
	}
	for _, c := range credits {
		if c.amount.IsZero() {
			continue
		}
		lines = append(lines, domain.CreditLine(mappings[c.key], c.amount, c.notes))
	}

	if err := domain.CheckBalanced(lines); err != nil {
		return nil, err
	}
	return lines, nil
}
