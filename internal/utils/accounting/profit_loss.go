package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// BuildProfitLoss reports revenue and expense turnovers of the trial balance.
// Opening and closing balances are never used: the statement covers the flow
// of the requested range only.
func BuildProfitLoss(tb domain.TrialBalanceData) domain.ProfitLoss {
	pl := domain.ProfitLoss{
		Revenue:       []domain.ProfitLossLine{},
		Expenses:      []domain.ProfitLossLine{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, row := range tb.Rows {
		if row.TurnoverDebit.IsZero() && row.TurnoverCredit.IsZero() {
			continue
		}
		switch row.Class {
		case domain.Revenue:
			amount := row.TurnoverCredit.Sub(row.TurnoverDebit)
			pl.Revenue = append(pl.Revenue, domain.ProfitLossLine{AccountID: row.AccountID, Code: row.Code, Name: row.Name, Amount: amount})
			pl.TotalRevenue = pl.TotalRevenue.Add(amount)
		case domain.Expense:
			amount := row.TurnoverDebit.Sub(row.TurnoverCredit)
			pl.Expenses = append(pl.Expenses, domain.ProfitLossLine{AccountID: row.AccountID, Code: row.Code, Name: row.Name, Amount: amount})
			pl.TotalExpenses = pl.TotalExpenses.Add(amount)
		}
	}

	pl.NetProfit = pl.TotalRevenue.Sub(pl.TotalExpenses)
	return pl
}
