package accounting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// BuildTrialBalance folds journal lines into per-account turnovers on top of
// the opening balances. Lines and openings for accounts that are not in
// accounts are ignored. The result depends only on its inputs.
func BuildTrialBalance(accounts []domain.Account, lines []domain.JournalLine, openings []domain.OpeningBalance) domain.TrialBalanceData {
	balances := make(map[string]*domain.AccountBalance, len(accounts))
	order := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if _, seen := balances[acc.AccountID]; seen {
			continue
		}
		balances[acc.AccountID] = &domain.AccountBalance{
			AccountID:      acc.AccountID,
			Code:           acc.Code,
			Name:           acc.Name,
			Class:          acc.Class,
			IsCurrent:      acc.IsCurrent,
			OpeningDebit:   decimal.Zero,
			OpeningCredit:  decimal.Zero,
			TurnoverDebit:  decimal.Zero,
			TurnoverCredit: decimal.Zero,
		}
		order = append(order, acc.AccountID)
	}

	for _, ob := range openings {
		if b, ok := balances[ob.AccountID]; ok {
			b.OpeningDebit = b.OpeningDebit.Add(ob.OpeningDebit)
			b.OpeningCredit = b.OpeningCredit.Add(ob.OpeningCredit)
		}
	}

	for _, l := range lines {
		if b, ok := balances[l.AccountID]; ok {
			b.TurnoverDebit = b.TurnoverDebit.Add(l.Debit)
			b.TurnoverCredit = b.TurnoverCredit.Add(l.Credit)
		}
	}

	totals := domain.TrialBalanceTotals{
		OpeningDebit:   decimal.Zero,
		OpeningCredit:  decimal.Zero,
		TurnoverDebit:  decimal.Zero,
		TurnoverCredit: decimal.Zero,
		ClosingDebit:   decimal.Zero,
		ClosingCredit:  decimal.Zero,
	}
	rows := make([]domain.AccountBalance, 0, len(order))
	for _, id := range order {
		b := balances[id]
		b.ClosingDebit, b.ClosingCredit = SplitClosing(b.Class,
			b.OpeningDebit.Add(b.TurnoverDebit),
			b.OpeningCredit.Add(b.TurnoverCredit))

		totals.OpeningDebit = totals.OpeningDebit.Add(b.OpeningDebit)
		totals.OpeningCredit = totals.OpeningCredit.Add(b.OpeningCredit)
		totals.TurnoverDebit = totals.TurnoverDebit.Add(b.TurnoverDebit)
		totals.TurnoverCredit = totals.TurnoverCredit.Add(b.TurnoverCredit)
		totals.ClosingDebit = totals.ClosingDebit.Add(b.ClosingDebit)
		totals.ClosingCredit = totals.ClosingCredit.Add(b.ClosingCredit)

		if b.HasActivity() {
			rows = append(rows, *b)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	return domain.TrialBalanceData{
		Rows:   rows,
		Totals: totals,
		IsBalanced: WithinTolerance(totals.OpeningDebit, totals.OpeningCredit) &&
			WithinTolerance(totals.ClosingDebit, totals.ClosingCredit),
	}
}
