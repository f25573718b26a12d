package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

const (
	currentAssetCodeLimit     = "2000"
	currentLiabilityCodeLimit = "4000"

	// CurrentResultName labels the equity line holding unclosed revenue minus expenses.
	CurrentResultName = "Current period result"
)

// IsCurrentAsset classifies an asset row. An explicit IsCurrent flag wins;
// otherwise codes below 2000 are current.
func IsCurrentAsset(b domain.AccountBalance) bool {
	if b.IsCurrent != nil {
		return *b.IsCurrent
	}
	return b.Code < currentAssetCodeLimit
}

// IsCurrentLiability classifies a liability row. An explicit IsCurrent flag
// wins; otherwise codes below 4000 are current.
func IsCurrentLiability(b domain.AccountBalance) bool {
	if b.IsCurrent != nil {
		return *b.IsCurrent
	}
	return b.Code < currentLiabilityCodeLimit
}

// BuildBalanceSheet builds the statement of financial position from the
// closing balances of a trial balance. Revenue and expense accounts that have
// not been closed into retained earnings are reported as a single derived
// equity line, so a balanced trial balance always yields a balanced sheet.
func BuildBalanceSheet(tb domain.TrialBalanceData) domain.BalanceSheet {
	bs := domain.BalanceSheet{
		CurrentAssets:         []domain.BalanceSheetLine{},
		NonCurrentAssets:      []domain.BalanceSheetLine{},
		CurrentLiabilities:    []domain.BalanceSheetLine{},
		NonCurrentLiabilities: []domain.BalanceSheetLine{},
		Equity:                []domain.BalanceSheetLine{},
		TotalCurrentAssets:    decimal.Zero,
		TotalNonCurrentAssets: decimal.Zero,
		TotalLiabilities:      decimal.Zero,
		TotalEquity:           decimal.Zero,
	}
	result := decimal.Zero

	for _, row := range tb.Rows {
		amount := row.NetClosing()
		line := domain.BalanceSheetLine{AccountID: row.AccountID, Code: row.Code, Name: row.Name, Amount: amount}

		switch row.Class {
		case domain.Asset:
			if IsCurrentAsset(row) {
				bs.CurrentAssets = append(bs.CurrentAssets, line)
				bs.TotalCurrentAssets = bs.TotalCurrentAssets.Add(amount)
			} else {
				bs.NonCurrentAssets = append(bs.NonCurrentAssets, line)
				bs.TotalNonCurrentAssets = bs.TotalNonCurrentAssets.Add(amount)
			}
		case domain.Liability:
			if IsCurrentLiability(row) {
				bs.CurrentLiabilities = append(bs.CurrentLiabilities, line)
			} else {
				bs.NonCurrentLiabilities = append(bs.NonCurrentLiabilities, line)
			}
			bs.TotalLiabilities = bs.TotalLiabilities.Add(amount)
		case domain.Equity:
			bs.Equity = append(bs.Equity, line)
			bs.TotalEquity = bs.TotalEquity.Add(amount)
		case domain.Revenue:
			result = result.Add(amount)
		case domain.Expense:
			result = result.Sub(amount)
		}
	}

	if !result.IsZero() {
		bs.Equity = append(bs.Equity, domain.BalanceSheetLine{Name: CurrentResultName, Amount: result})
		bs.TotalEquity = bs.TotalEquity.Add(result)
	}

	bs.TotalAssets = bs.TotalCurrentAssets.Add(bs.TotalNonCurrentAssets)
	bs.IsBalanced = WithinTolerance(bs.TotalAssets, bs.TotalLiabilities.Add(bs.TotalEquity))
	return bs
}
