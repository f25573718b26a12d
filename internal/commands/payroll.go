package commands

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	"github.com/SscSPs/kz_bookkeeping/internal/utils/payroll"
)

func newPayrollCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Payroll tools",
	}
	cmd.AddCommand(newPayrollCalcCommand())
	return cmd
}

// newPayrollCalcCommand previews one employee's payroll with the built-in
// tax settings of a year. It needs no database.
func newPayrollCalcCommand() *cobra.Command {
	var (
		gross      string
		year       int
		resident   bool
		preset     string
		workedDays int
		totalDays  int
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate withholdings and employer contributions for a monthly gross salary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(gross)
			if err != nil {
				return fmt.Errorf("invalid --gross %q: %w", gross, err)
			}
			flags, ok := domain.FlagsForPreset(preset)
			if !ok {
				return fmt.Errorf("unknown --preset %q", preset)
			}

			in := payroll.CalculationInput{
				Gross:      amount,
				IsResident: resident,
				Flags:      flags,
				Settings:   payroll.DefaultSettings(year),
			}
			if preset == "non_resident" && !cmd.Flags().Changed("resident") {
				in.IsResident = false
			}
			if cmd.Flags().Changed("worked-days") || cmd.Flags().Changed("total-days") {
				in.WorkedDays = &workedDays
				in.TotalWorkDays = &totalDays
			}

			calc, err := payroll.Calculate(in)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(calc)
		},
	}

	cmd.Flags().StringVar(&gross, "gross", "", "monthly gross salary in tenge (required)")
	_ = cmd.MarkFlagRequired("gross")
	cmd.Flags().IntVar(&year, "year", 2025, "tax year")
	cmd.Flags().BoolVar(&resident, "resident", true, "employee is a tax resident")
	cmd.Flags().StringVar(&preset, "preset", "standard", "employment preset: standard, pensioner or non_resident")
	cmd.Flags().IntVar(&workedDays, "worked-days", 0, "days worked in the month")
	cmd.Flags().IntVar(&totalDays, "total-days", 0, "working days in the month")

	return cmd
}
