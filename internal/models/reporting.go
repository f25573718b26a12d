package models

import "github.com/shopspring/decimal"

// OpeningBalance represents a row of the opening_balances table.
type OpeningBalance struct {
	TenantID      string          `db:"tenant_id"`
	AccountID     string          `db:"account_id"`
	FiscalYear    int             `db:"fiscal_year"`
	OpeningDebit  decimal.Decimal `db:"opening_debit"`
	OpeningCredit decimal.Decimal `db:"opening_credit"`
	AuditFields
}
