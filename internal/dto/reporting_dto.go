package dto

import "github.com/SscSPs/kz_bookkeeping/internal/core/domain"

// ReportParams is the date range every report requires.
type ReportParams struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// AccountBalanceParams asks for a balance as of a date.
type AccountBalanceParams struct {
	AsOf string `form:"asOf" binding:"required"`
}

// SetOpeningBalancesRequest replaces a fiscal year's opening balances.
type SetOpeningBalancesRequest struct {
	Balances []domain.OpeningBalance `json:"balances" binding:"required,dive"`
}
